package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/barber_bot/internal/render"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Сколько записей показывает /reservations; сообщение Telegram ограничено 4096 символами
const reservationsListLimit = 20

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("start")

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"Book a haircut in three taps: pick a service, a day and a free time.\n"+
			"Send /help to see all commands.",
		html.EscapeString(name),
	))

	h.showBooking(ctx, b, update.Message.Chat.ID)
}

// HandleBook обрабатывает команду /book - присылает экран записи
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("book")

	h.showBooking(ctx, b, update.Message.Chat.ID)
}

// HandleCalendar обрабатывает команду /calendar - картинка просматриваемого месяца
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("calendar")
	chatID := update.Message.Chat.ID

	err := h.sessions.With(chatID, func(sess *service.Session) error {
		view, err := h.bookingService.Render(sess)
		if err != nil {
			return err
		}

		image, err := render.MonthImage(view)
		if err != nil {
			return err
		}

		caption := fmt.Sprintf("🗓 <b>%s</b>", formatting.MonthTitle(view.Month))
		if svc, ok := view.ActiveService(); ok {
			caption += "\n💈 " + html.EscapeString(svc.Label)
		}
		return common.SendMonthImage(ctx, b, chatID, image, caption)
	})
	if err != nil {
		h.logger.Error("Failed to send month image", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
}

// HandleReservations обрабатывает команду /reservations
func (h *Handlers) HandleReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("reservations")

	recent := h.bookingService.RecentReservations(reservationsListLimit)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.FormatReservations(recent))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("help")

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildHelpText())
}

// HandleReset обрабатывает команду /reset - сбрасывает выбор и начинает заново
func (h *Handlers) HandleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.observe("reset")
	chatID := update.Message.Chat.ID

	h.sessions.Reset(chatID)
	h.logger.Info("Session reset", zap.Int64("chat_id", chatID))

	h.sendMessage(ctx, b, chatID, "🔄 Selection cleared.")
	h.showBooking(ctx, b, chatID)
}

// showBooking присылает свежий экран записи для сессии чата
func (h *Handlers) showBooking(ctx context.Context, b *bot.Bot, chatID int64) {
	err := h.sessions.With(chatID, func(sess *service.Session) error {
		view, err := h.bookingService.Render(sess)
		if err != nil {
			return err
		}
		return common.SendBookingScreen(ctx, b, chatID, view)
	})
	if err != nil {
		h.logger.Error("Failed to show booking screen", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
}
