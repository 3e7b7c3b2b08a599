package common

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	// Игнорируем ошибку "message is not modified" - это не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// ShowBooking перерисовывает экран записи в сообщении с кнопками
func (hc *HandlerContext) ShowBooking(view *service.View) error {
	text, kb := BuildBookingScreen(view)
	return hc.EditMessage(text, kb)
}

// HandleError логирует ошибку и показывает пользователю alert
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("chat_id", hc.ChatID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// SendBookingScreen отправляет новый экран записи в чат
func SendBookingScreen(ctx context.Context, b *bot.Bot, chatID int64, view *service.View) error {
	text, kb := BuildBookingScreen(view)
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	return err
}

// SendMonthImage отправляет картинку месяца с подписью
func SendMonthImage(ctx context.Context, b *bot.Bot, chatID int64, image []byte, caption string) error {
	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "month.png", Data: bytes.NewReader(image)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}
