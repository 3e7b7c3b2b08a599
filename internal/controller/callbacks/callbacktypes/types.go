package callbacktypes

import (
	"github.com/Freeeeeet/barber_bot/internal/controller/state"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"go.uber.org/zap"
)

// Форматы callback data. Telegram ограничивает их 64 байтами.
const (
	SelectServicePrefix = "svc:"   // svc:hair
	MonthPrefix         = "month:" // month:prev | month:next
	DayPrefix           = "day:"   // day:2026-10-15
	SlotPrefix          = "slot:"  // slot:2026-10-20:combo:09:30
	Noop                = "noop"

	MonthPrev = "prev"
	MonthNext = "next"
)

// SlotData собирает callback data кнопки слота: день и услуга едут вместе со временем
func SlotData(dateKey, serviceID, timeKey string) string {
	return SlotPrefix + dateKey + ":" + serviceID + ":" + timeKey
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	BookingService *service.BookingService
	Sessions       *state.Manager
	Logger         *zap.Logger
}
