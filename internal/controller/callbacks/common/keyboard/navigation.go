package keyboard

import (
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot/models"
)

// MonthNavRow создаёт ряд "◀ Месяц ▶". Кнопка назад неактивна, если уходить некуда.
func MonthNavRow(title string, canGoBack bool) []models.InlineKeyboardButton {
	prev := Label(" ")
	if canGoBack {
		prev = Button("◀", callbacktypes.MonthPrefix+callbacktypes.MonthPrev)
	}
	return []models.InlineKeyboardButton{
		prev,
		Label(title),
		Button("▶", callbacktypes.MonthPrefix+callbacktypes.MonthNext),
	}
}

// AddMonthNav добавляет ряд навигации по месяцам к builder
func (b *Builder) AddMonthNav(title string, canGoBack bool) *Builder {
	return b.Row(MonthNavRow(title, canGoBack)...)
}
