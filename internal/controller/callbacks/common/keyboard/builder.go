package keyboard

import (
	"github.com/Freeeeeet/barber_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot/models"
)

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки по рядам не длиннее perRow
func (b *Builder) Grid(buttons []models.InlineKeyboardButton, perRow int) *Builder {
	if perRow <= 0 {
		perRow = len(buttons)
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Label создаёт некликабельную кнопку (заголовки, пустые клетки)
func Label(text string) models.InlineKeyboardButton {
	if text == "" {
		// Telegram отклоняет кнопки с пустым текстом
		text = " "
	}
	return Button(text, callbacktypes.Noop)
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
