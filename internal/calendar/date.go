package calendar

import (
	"errors"
	"fmt"
	"time"
)

const keyLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format")

// Date - календарный день без времени. Два Date равны, если совпадают все три поля.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New нормализует переполнение дня и месяца так же, как time.Date
func New(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарный день момента t в его локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseKey разбирает ключ вида YYYY-MM-DD
func ParseKey(key string) (Date, error) {
	t, err := time.Parse(keyLayout, key)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return DateOf(t), nil
}

// Key возвращает каноничный ключ YYYY-MM-DD; строки сортируются хронологически
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return d.Key()
}

// In возвращает полночь этого дня в указанной локации
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Before сообщает, что d строго раньше other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// SameMonth сообщает, что d и other лежат в одном месяце одного года
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}
