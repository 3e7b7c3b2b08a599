package common

import (
	"errors"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/Freeeeeet/barber_bot/internal/slots"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ This button is too old. Send /book to start again."
	case errors.Is(err, ErrInvalidFormat),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, slots.ErrInvalidTime):
		return "❌ Unrecognised button"
	case errors.Is(err, service.ErrUnknownService):
		return "❌ This service is no longer offered"
	default:
		return "❌ Something went wrong. Please try again."
	}
}
