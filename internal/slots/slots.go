package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidTime     = errors.New("invalid time format")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidHours    = errors.New("invalid business hours")
)

// BusinessHours - рабочее окно дня в минутах от полуночи, [Start, End)
type BusinessHours struct {
	Start int
	End   int
}

// DefaultHours - 09:00-19:00
func DefaultHours() BusinessHours {
	return BusinessHours{Start: 9 * 60, End: 19 * 60}
}

func (h BusinessHours) Validate() error {
	if h.Start < 0 || h.End > minutesPerDay || h.Start >= h.End {
		return fmt.Errorf("%w: %d-%d", ErrInvalidHours, h.Start, h.End)
	}
	return nil
}

// ParseClock переводит HH:MM в минуты от полуночи
func ParseClock(s string) (int, error) {
	tm, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return tm.Hour()*60 + tm.Minute(), nil
}

// ParseClosingClock как ParseClock, но дополнительно принимает 24:00 - закрытие в полночь
func ParseClosingClock(s string) (int, error) {
	if s == "24:00" {
		return minutesPerDay, nil
	}
	return ParseClock(s)
}

// FormatClock переводит минуты от полуночи в HH:MM
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOf возвращает минуты от полуночи момента t
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Generate возвращает упорядоченные времена начала слотов для даты и длительности услуги.
// Окно нарезается с шагом duration от hours.Start, пока слот целиком помещается до hours.End.
// Для сегодняшней даты отбрасываются слоты, начинающиеся не позже текущей минуты.
// Пустой результат означает отсутствие мест, а не ошибку.
func Generate(hours BusinessHours, duration int, date calendar.Date, now time.Time) ([]string, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	cutoff := -1
	if date == calendar.DateOf(now) {
		cutoff = MinutesOf(now)
	}

	slots := make([]string, 0, (hours.End-hours.Start)/duration)
	for cursor := hours.Start; cursor+duration <= hours.End; cursor += duration {
		if cursor <= cutoff {
			continue
		}
		slots = append(slots, FormatClock(cursor))
	}

	return slots, nil
}

// Contains сообщает, предлагается ли время timeKey в списке слотов
func Contains(slots []string, timeKey string) bool {
	for _, s := range slots {
		if s == timeKey {
			return true
		}
	}
	return false
}
