package service

import (
	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/google/uuid"
)

// MessageKind - тип подтверждения под слотами
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message - подтверждение или ошибка последнего действия
type Message struct {
	Kind MessageKind
	Text string
}

// Session - эфемерное состояние выбора одного посетителя. Не сохраняется.
type Session struct {
	ID           uuid.UUID
	ServiceID    string
	ViewMonth    calendar.Date
	SelectedDate calendar.Date
	SelectedSlot string
	Message      Message
}

// clearSelection сбрасывает выбранный слот и сообщение; вызывается при любой навигации
func (s *Session) clearSelection() {
	s.SelectedSlot = ""
	s.Message = Message{}
}
