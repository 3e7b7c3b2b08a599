package handlers

import (
	"github.com/Freeeeeet/barber_bot/internal/controller/state"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService *service.BookingService
	sessions       *state.Manager
	observer       service.CommandObserver
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookingService *service.BookingService,
	sessions *state.Manager,
	observer service.CommandObserver,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService: bookingService,
		sessions:       sessions,
		observer:       observer,
		logger:         logger,
	}
}
