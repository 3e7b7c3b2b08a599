package service

import "github.com/Freeeeeet/barber_bot/internal/calendar"

// Command - жест пользователя, который обрабатывает Dispatch
type Command interface {
	Name() string
}

// SelectService переключает активную услугу
type SelectService struct {
	ServiceID string
}

// ChangeMonth листает календарь; Direction -1 или +1
type ChangeMonth struct {
	Direction int
}

// SelectDay выбирает день
type SelectDay struct {
	Date calendar.Date
}

// PickSlot пытается занять слот. День и услуга приходят вместе со временем,
// так что кнопка бронирует ровно то, что было на экране, даже если сессия уже другая.
type PickSlot struct {
	Date      calendar.Date
	ServiceID string
	Time      string
}

func (SelectService) Name() string { return "select_service" }
func (ChangeMonth) Name() string   { return "change_month" }
func (SelectDay) Name() string     { return "select_day" }
func (PickSlot) Name() string      { return "pick_slot" }
