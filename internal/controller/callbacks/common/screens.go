package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

const slotsPerRow = 4

// BuildBookingScreen формирует экран записи: услуга, месяц, слоты дня и последние записи
func BuildBookingScreen(view *service.View) (string, *models.InlineKeyboardMarkup) {
	return bookingText(view), bookingKeyboard(view)
}

func bookingText(view *service.View) string {
	var sb strings.Builder

	sb.WriteString("✂️ <b>Book an appointment</b>\n\n")

	if svc, ok := view.ActiveService(); ok {
		fmt.Fprintf(&sb, "💈 Service: %s (%s)\n", html.EscapeString(svc.Label), formatting.FormatDuration(svc.Duration))
	}
	fmt.Fprintf(&sb, "📅 Date: %s\n\n", service.ReadableDate(view.SelectedDate))

	switch view.Message.Kind {
	case service.MessageSuccess:
		fmt.Fprintf(&sb, "✅ %s\n\n", html.EscapeString(view.Message.Text))
	case service.MessageError:
		fmt.Fprintf(&sb, "⚠️ %s\n\n", html.EscapeString(view.Message.Text))
	}

	if len(view.Slots) == 0 {
		sb.WriteString("No available times for this day.\n")
	} else {
		free := 0
		for _, s := range view.Slots {
			if !s.Booked {
				free++
			}
		}
		fmt.Fprintf(&sb, "🕒 Free times: %d of %d\n", free, len(view.Slots))
	}

	if len(view.Recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(FormatReservations(view.Recent))
	}

	return sb.String()
}

func bookingKeyboard(view *service.View) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	services := make([]models.InlineKeyboardButton, 0, len(view.Services))
	for _, opt := range view.Services {
		text := opt.Label
		if opt.Active {
			text = "✅ " + text
		}
		services = append(services, keyboard.Button(text, callbacktypes.SelectServicePrefix+opt.ID))
	}
	kb.Grid(services, 2)

	kb.AddMonthNav(formatting.MonthTitle(view.Month), view.CanGoBack)

	header := make([]models.InlineKeyboardButton, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		header = append(header, keyboard.Label(formatting.GetWeekdayShort(wd)))
	}
	kb.Row(header...)

	for _, week := range view.Weeks {
		row := make([]models.InlineKeyboardButton, 0, len(week))
		for _, cell := range week {
			row = append(row, dayButton(cell))
		}
		kb.Row(row...)
	}

	active, _ := view.ActiveService()
	dateKey := view.SelectedDate.Key()
	slotButtons := make([]models.InlineKeyboardButton, 0, len(view.Slots))
	for _, s := range view.Slots {
		slotButtons = append(slotButtons, slotButton(dateKey, active.ID, s))
	}
	kb.Grid(slotButtons, slotsPerRow)

	return kb.Build()
}

// dayButton: прошедшие дни и пустые клетки некликабельны
func dayButton(cell service.DayCell) models.InlineKeyboardButton {
	if cell.Empty {
		return keyboard.Label(" ")
	}
	day := strconv.Itoa(cell.Date.Day)
	if !cell.Selectable {
		return keyboard.Label("·")
	}
	switch {
	case cell.Selected:
		day = "[" + day + "]"
	case cell.FullyBooked:
		day = day + "✖"
	}
	return keyboard.Button(day, callbacktypes.DayPrefix+cell.Date.Key())
}

// slotButton: занятый слот некликабелен
func slotButton(dateKey, serviceID string, s service.SlotState) models.InlineKeyboardButton {
	if s.Booked {
		return keyboard.Label("✖ " + s.Time)
	}
	text := s.Time
	if s.Selected {
		text = "▶ " + text
	}
	return keyboard.Button(text, callbacktypes.SlotData(dateKey, serviceID, s.Time))
}

// FormatReservations форматирует список последних записей
func FormatReservations(recent []service.ReservationView) string {
	if len(recent) == 0 {
		return "📭 No reservations yet."
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Recent reservations</b>\n")
	for _, r := range recent {
		fmt.Fprintf(&sb, "• %s %s · %s\n",
			formatting.FormatReservationDate(r.DateKey),
			r.TimeKey,
			html.EscapeString(r.ServiceLabel))
	}
	return sb.String()
}

// BuildHelpText возвращает справку по командам
func BuildHelpText() string {
	return "📚 <b>Commands</b>\n\n" +
		"/book - Pick a service, a day and a time\n" +
		"/calendar - Month overview as a picture\n" +
		"/reservations - Latest reservations\n" +
		"/reset - Start over\n" +
		"/help - Show this help\n\n" +
		"Past days cannot be selected. Today's times that already started are hidden."
}
