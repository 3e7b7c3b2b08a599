package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ParseCommand превращает callback data в команду сервиса записи
func ParseCommand(data string) (service.Command, error) {
	// Время само содержит двоеточие, поэтому режем только по первому
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidFormat, data)
	}
	prefix, value := parts[0]+":", parts[1]

	switch prefix {
	case callbacktypes.SelectServicePrefix:
		return service.SelectService{ServiceID: value}, nil

	case callbacktypes.MonthPrefix:
		switch value {
		case callbacktypes.MonthPrev:
			return service.ChangeMonth{Direction: -1}, nil
		case callbacktypes.MonthNext:
			return service.ChangeMonth{Direction: 1}, nil
		}

	case callbacktypes.DayPrefix:
		date, err := calendar.ParseKey(value)
		if err != nil {
			return nil, fmt.Errorf("parse day: %w", err)
		}
		return service.SelectDay{Date: date}, nil

	case callbacktypes.SlotPrefix:
		return parseSlot(value)
	}

	return nil, fmt.Errorf("%w: %q", common.ErrInvalidFormat, data)
}

// Route распределяет callback query: разбирает команду и применяет её к сессии чата
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	data := callback.Data

	if data == callbacktypes.Noop {
		// No operation - просто подтверждаем callback
		hc.Answer("")
		return
	}

	if hc.Message == nil {
		common.HandleError(hc, common.ErrNoMessage, "route")
		return
	}

	cmd, err := ParseCommand(data)
	if err != nil {
		common.HandleError(hc, err, "parse_callback")
		return
	}

	var view *service.View
	err = h.Sessions.With(hc.ChatID, func(sess *service.Session) error {
		v, dispatchErr := h.BookingService.Dispatch(ctx, sess, cmd)
		if dispatchErr != nil {
			return dispatchErr
		}
		view = v

		// Запись уже сохранена; неудачная перерисовка не должна выглядеть как отказ
		if editErr := hc.ShowBooking(view); editErr != nil {
			h.Logger.Warn("Failed to edit booking screen",
				zap.Int64("chat_id", hc.ChatID),
				zap.String("command", cmd.Name()),
				zap.Error(editErr))
		}
		return nil
	})
	if err != nil {
		common.HandleError(hc, err, cmd.Name())
		return
	}

	if view.Message.Kind == service.MessageSuccess {
		hc.Answer("✅ " + view.Message.Text)
		return
	}
	hc.Answer("")
}

// parseSlot разбирает "2026-10-20:combo:09:30". Дата и время фиксированной длины,
// поэтому ID услуги - всё, что между ними.
func parseSlot(value string) (service.Command, error) {
	const dateLen, timeLen = len("2006-01-02"), len("15:04")

	if len(value) < dateLen+timeLen+3 || value[dateLen] != ':' || value[len(value)-timeLen-1] != ':' {
		return nil, fmt.Errorf("%w: slot %q", common.ErrInvalidFormat, value)
	}

	date, err := calendar.ParseKey(value[:dateLen])
	if err != nil {
		return nil, fmt.Errorf("parse slot: %w", err)
	}
	timeKey := value[len(value)-timeLen:]
	if _, err := slots.ParseClock(timeKey); err != nil {
		return nil, fmt.Errorf("parse slot: %w", err)
	}

	return service.PickSlot{
		Date:      date,
		ServiceID: value[dateLen+1 : len(value)-timeLen-1],
		Time:      timeKey,
	}, nil
}
