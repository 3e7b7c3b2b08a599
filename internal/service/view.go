package service

import (
	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/model"
)

// View - снимок сессии, готовый к отрисовке
type View struct {
	SessionID    string
	Services     []ServiceOption
	Month        calendar.Date
	Today        calendar.Date
	CanGoBack    bool
	Weeks        [][]DayCell
	SelectedDate calendar.Date
	Slots        []SlotState
	Message      Message
	Recent       []ReservationView
}

type ServiceOption struct {
	model.Service
	Active bool
}

// DayCell - ячейка сетки месяца; Empty для отступов до первого и после последнего числа
type DayCell struct {
	Date        calendar.Date
	Empty       bool
	Selectable  bool
	Selected    bool
	Today       bool
	FullyBooked bool
}

type SlotState struct {
	Time     string
	Booked   bool
	Selected bool
}

type ReservationView struct {
	model.Reservation
	ServiceLabel string
}

// ActiveService возвращает выбранную услугу
func (v *View) ActiveService() (model.Service, bool) {
	for _, s := range v.Services {
		if s.Active {
			return s.Service, true
		}
	}
	return model.Service{}, false
}
