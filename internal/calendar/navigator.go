package calendar

import "time"

// WeekdayNames - заголовки колонок сетки, неделя начинается с воскресенья
var WeekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Today возвращает текущий календарный день по часам now
func Today(now time.Time) Date {
	return DateOf(now)
}

// StartOfMonth возвращает первое число месяца даты d
func StartOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// ChangeMonth вычисляет соседний месяц. Переход отклоняется (false, view без изменений),
// если целевой месяц строго раньше месяца today или direction не равен -1/+1.
// Верхней границы нет.
func ChangeMonth(view Date, direction int, today Date) (Date, bool) {
	if direction != -1 && direction != 1 {
		return view, false
	}

	next := New(view.Year, view.Month+time.Month(direction), 1)
	if next.Before(StartOfMonth(today)) {
		return view, false
	}
	return next, true
}

// CanGoBack сообщает, можно ли перейти на месяц назад
func CanGoBack(view, today Date) bool {
	return StartOfMonth(today).Before(StartOfMonth(view))
}

// FirstSelectableDay - день выбора по умолчанию для просматриваемого месяца:
// сегодня, если это текущий месяц, иначе первое число.
func FirstSelectableDay(year int, month time.Month, today Date) Date {
	if year == today.Year && month == today.Month {
		return today
	}
	return Date{Year: year, Month: month, Day: 1}
}

// IsSelectable - любой день строго раньше today выбрать нельзя
func IsSelectable(day, today Date) bool {
	return !day.Before(today)
}

// DaysIn возвращает количество дней в месяце
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Grid - раскладка месяца для отрисовки
type Grid struct {
	Padding int    // пустые ячейки перед первым числом
	Days    []Date // все дни месяца по порядку
}

// MonthGrid строит сетку месяца view с неделей от воскресенья
func MonthGrid(view Date) Grid {
	first := StartOfMonth(view)
	n := DaysIn(first.Year, first.Month)

	days := make([]Date, 0, n)
	for day := 1; day <= n; day++ {
		days = append(days, Date{Year: first.Year, Month: first.Month, Day: day})
	}

	return Grid{
		Padding: int(first.Weekday()),
		Days:    days,
	}
}

// Weeks разбивает сетку на недели по 7 ячеек; нулевой Date означает пустую ячейку
func (g Grid) Weeks() [][]Date {
	cells := make([]Date, g.Padding, g.Padding+len(g.Days)+6)
	cells = append(cells, g.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, Date{})
	}

	weeks := make([][]Date, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}
