package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/ledger"
	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownService = errors.New("unknown service")
	ErrUnknownCommand = errors.New("unknown command")
)

const (
	msgSnappedUp   = "That slot was just snapped up. Please choose another."
	msgUnavailable = "That time is no longer available. Please choose another."
	msgSaveFailed  = "We could not save your booking. Please try again."
)

// Clock возвращает текущий момент; подменяется в тестах
type Clock func() time.Time

// CommandObserver получает имена обработанных команд (метрики)
type CommandObserver interface {
	ObserveCommand(command string)
}

// BookingService владеет каталогом, рабочими часами и леджером и обрабатывает
// команды посетителей над их сессиями
type BookingService struct {
	catalog     model.Catalog
	hours       slots.BusinessHours
	ledger      *ledger.Ledger
	clock       Clock
	recentLimit int
	observer    CommandObserver
	logger      *zap.Logger
}

func NewBookingService(
	catalog model.Catalog,
	hours slots.BusinessHours,
	l *ledger.Ledger,
	clock Clock,
	recentLimit int,
	observer CommandObserver,
	logger *zap.Logger,
) *BookingService {
	if clock == nil {
		clock = time.Now
	}
	return &BookingService{
		catalog:     catalog,
		hours:       hours,
		ledger:      l,
		clock:       clock,
		recentLimit: recentLimit,
		observer:    observer,
		logger:      logger,
	}
}

// Catalog возвращает каталог услуг
func (s *BookingService) Catalog() model.Catalog {
	return s.catalog
}

// Service возвращает услугу каталога по идентификатору
func (s *BookingService) Service(id string) (model.Service, error) {
	svc, ok := s.catalog.Find(id)
	if !ok {
		return model.Service{}, fmt.Errorf("%w: %q", ErrUnknownService, id)
	}
	return svc, nil
}

// Today возвращает сегодняшний день по часам сервиса
func (s *BookingService) Today() calendar.Date {
	return calendar.Today(s.clock())
}

// NewSession создаёт сессию: сегодня, текущий месяц, первая услуга каталога
func (s *BookingService) NewSession() *Session {
	today := s.Today()
	return &Session{
		ID:           uuid.New(),
		ServiceID:    s.catalog[0].ID,
		ViewMonth:    calendar.StartOfMonth(today),
		SelectedDate: today,
	}
}

// AvailableSlots возвращает слоты дня для услуги с отметкой о занятости
func (s *BookingService) AvailableSlots(date calendar.Date, serviceID string) ([]SlotState, error) {
	svc, ok := s.catalog.Find(serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, serviceID)
	}

	times, err := slots.Generate(s.hours, svc.Duration, date, s.clock())
	if err != nil {
		return nil, fmt.Errorf("generate slots: %w", err)
	}

	booked := s.ledger.BookedTimes(date.Key())
	states := make([]SlotState, 0, len(times))
	for _, t := range times {
		_, taken := booked[t]
		states = append(states, SlotState{Time: t, Booked: taken})
	}
	return states, nil
}

// RecentReservations возвращает первые n записей леджера с названиями услуг
func (s *BookingService) RecentReservations(n int) []ReservationView {
	reservations := s.ledger.Recent(n)
	views := make([]ReservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, ReservationView{
			Reservation:  r,
			ServiceLabel: s.catalog.LabelOf(r.ServiceID),
		})
	}
	return views
}

// Dispatch применяет команду к сессии и возвращает новое представление.
// Навигация за нижнюю границу и выбор прошедшего дня молча игнорируются.
func (s *BookingService) Dispatch(ctx context.Context, sess *Session, cmd Command) (*View, error) {
	if s.observer != nil {
		s.observer.ObserveCommand(cmd.Name())
	}

	today := s.Today()
	s.normalize(sess, today)

	switch c := cmd.(type) {
	case SelectService:
		if _, ok := s.catalog.Find(c.ServiceID); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, c.ServiceID)
		}
		if sess.ServiceID == c.ServiceID {
			break
		}
		sess.ServiceID = c.ServiceID
		sess.clearSelection()

	case ChangeMonth:
		next, ok := calendar.ChangeMonth(sess.ViewMonth, c.Direction, today)
		if !ok {
			break
		}
		sess.ViewMonth = next
		sess.clearSelection()
		if !sess.SelectedDate.SameMonth(next) {
			sess.SelectedDate = calendar.FirstSelectableDay(next.Year, next.Month, today)
		}

	case SelectDay:
		if !calendar.IsSelectable(c.Date, today) {
			break
		}
		sess.SelectedDate = c.Date
		sess.ViewMonth = calendar.StartOfMonth(c.Date)
		sess.clearSelection()

	case PickSlot:
		if err := s.pickSlot(ctx, sess, c, today); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	return s.Render(sess)
}

func (s *BookingService) pickSlot(ctx context.Context, sess *Session, c PickSlot, today calendar.Date) error {
	svc, ok := s.catalog.Find(c.ServiceID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownService, c.ServiceID)
	}
	timeKey := c.Time

	if !calendar.IsSelectable(c.Date, today) {
		sess.SelectedSlot = ""
		sess.Message = Message{Kind: MessageError, Text: msgUnavailable}
		return nil
	}

	// Кнопка могла прийти из другого сообщения или после сброса сессии:
	// переводим сессию на день и услугу с кнопки
	if sess.ServiceID != svc.ID || sess.SelectedDate != c.Date {
		s.logger.Debug("Re-anchoring session to tapped slot",
			zap.String("session_id", sess.ID.String()),
			zap.String("service", svc.ID),
			zap.String("date", c.Date.Key()))
		sess.ServiceID = svc.ID
		sess.SelectedDate = c.Date
		sess.ViewMonth = calendar.StartOfMonth(c.Date)
	}

	offered, err := slots.Generate(s.hours, svc.Duration, c.Date, s.clock())
	if err != nil {
		return fmt.Errorf("generate slots: %w", err)
	}
	if !slots.Contains(offered, timeKey) {
		sess.SelectedSlot = ""
		sess.Message = Message{Kind: MessageError, Text: msgUnavailable}
		return nil
	}

	sess.SelectedSlot = timeKey
	dateKey := c.Date.Key()

	err = s.ledger.Claim(ctx, dateKey, timeKey, svc.ID)
	switch {
	case errors.Is(err, ledger.ErrAlreadyBooked):
		s.logger.Info("Slot already booked",
			zap.String("session_id", sess.ID.String()),
			zap.String("date", dateKey),
			zap.String("time", timeKey))
		sess.Message = Message{Kind: MessageError, Text: msgSnappedUp}
		return nil
	case err != nil:
		sess.Message = Message{Kind: MessageError, Text: msgSaveFailed}
		return fmt.Errorf("claim slot: %w", err)
	}

	s.logger.Info("Booking confirmed",
		zap.String("session_id", sess.ID.String()),
		zap.String("service", svc.ID),
		zap.String("date", dateKey),
		zap.String("time", timeKey))

	sess.SelectedSlot = ""
	sess.Message = Message{
		Kind: MessageSuccess,
		Text: fmt.Sprintf("Booked %s on %s at %s", svc.Label, ReadableDate(c.Date), timeKey),
	}
	return nil
}

// Render строит представление сессии без изменения леджера
func (s *BookingService) Render(sess *Session) (*View, error) {
	today := s.Today()
	s.normalize(sess, today)

	svc, ok := s.catalog.Find(sess.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, sess.ServiceID)
	}

	view := &View{
		SessionID:    sess.ID.String(),
		Month:        sess.ViewMonth,
		Today:        today,
		CanGoBack:    calendar.CanGoBack(sess.ViewMonth, today),
		SelectedDate: sess.SelectedDate,
		Message:      sess.Message,
		Recent:       s.RecentReservations(s.recentLimit),
	}

	for _, item := range s.catalog {
		view.Services = append(view.Services, ServiceOption{Service: item, Active: item.ID == svc.ID})
	}

	for _, week := range calendar.MonthGrid(sess.ViewMonth).Weeks() {
		row := make([]DayCell, 0, len(week))
		for _, day := range week {
			if day.IsZero() {
				row = append(row, DayCell{Empty: true})
				continue
			}
			cell := DayCell{
				Date:       day,
				Selectable: calendar.IsSelectable(day, today),
				Selected:   day == sess.SelectedDate,
				Today:      day == today,
			}
			if cell.Selectable {
				cell.FullyBooked = s.fullyBooked(day, svc.ID)
			}
			row = append(row, cell)
		}
		view.Weeks = append(view.Weeks, row)
	}

	states, err := s.AvailableSlots(sess.SelectedDate, svc.ID)
	if err != nil {
		return nil, err
	}
	for i := range states {
		states[i].Selected = states[i].Time == sess.SelectedSlot
	}
	view.Slots = states

	return view, nil
}

// normalize чинит сессию, пережившую смену суток: прошедший день и месяц не остаются выбранными
func (s *BookingService) normalize(sess *Session, today calendar.Date) {
	if calendar.StartOfMonth(sess.ViewMonth).Before(calendar.StartOfMonth(today)) {
		sess.ViewMonth = calendar.StartOfMonth(today)
	}
	if sess.SelectedDate.Before(today) || !sess.SelectedDate.SameMonth(sess.ViewMonth) {
		sess.SelectedDate = calendar.FirstSelectableDay(sess.ViewMonth.Year, sess.ViewMonth.Month, today)
		sess.SelectedSlot = ""
	}
}

func (s *BookingService) fullyBooked(day calendar.Date, serviceID string) bool {
	states, err := s.AvailableSlots(day, serviceID)
	if err != nil || len(states) == 0 {
		return false
	}
	for _, st := range states {
		if !st.Booked {
			return false
		}
	}
	return true
}

// ReadableDate форматирует день как "Thursday, October 15"
func ReadableDate(d calendar.Date) string {
	return d.In(time.UTC).Format("Monday, January 2")
}
