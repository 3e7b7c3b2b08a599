package controller

import (
	"context"

	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/barber_bot/internal/controller/handlers"
	"github.com/Freeeeeet/barber_bot/internal/controller/state"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	sessions *state.Manager,
	observer service.CommandObserver,
	logger *zap.Logger,
) *BotController {
	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		bookingService,
		sessions,
		observer,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		bookingService,
		sessions,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.handlers.HandleCalendar)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reservations", bot.MatchTypeExact, c.handlers.HandleReservations)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypeExact, c.handlers.HandleReset)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start"},
		{Command: "book", Description: "✂️ Book an appointment"},
		{Command: "calendar", Description: "🗓 Month overview"},
		{Command: "reservations", Description: "📋 Recent reservations"},
		{Command: "reset", Description: "🔄 Start over"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота; блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
