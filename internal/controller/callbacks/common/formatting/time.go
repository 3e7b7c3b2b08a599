package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
)

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// MonthTitle возвращает заголовок месяца: "October 2026"
func MonthTitle(d calendar.Date) string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(calendar.WeekdayNames) {
		return calendar.WeekdayNames[weekday]
	}
	return "?"
}

// FormatReservationDate форматирует ключ даты записи как "Tue, Oct 20".
// Нераспознанный ключ возвращается как есть.
func FormatReservationDate(dateKey string) string {
	d, err := calendar.ParseKey(dateKey)
	if err != nil {
		return dateKey
	}
	return d.In(time.UTC).Format("Mon, Jan 2")
}
