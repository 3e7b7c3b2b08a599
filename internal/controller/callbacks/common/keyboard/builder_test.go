package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSplitsRows(t *testing.T) {
	buttons := []models.InlineKeyboardButton{
		Button("a", "1"), Button("b", "2"), Button("c", "3"), Button("d", "4"), Button("e", "5"),
	}

	kb := NewBuilder().Grid(buttons, 2).Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[2], 1)
	assert.Equal(t, "5", kb.InlineKeyboard[2][0].CallbackData)
}

func TestLabelIsNoop(t *testing.T) {
	btn := Label("")
	assert.Equal(t, " ", btn.Text)
	assert.Equal(t, "noop", btn.CallbackData)
}

func TestMonthNavRow(t *testing.T) {
	row := MonthNavRow("October 2026", false)
	require.Len(t, row, 3)
	assert.Equal(t, "noop", row[0].CallbackData)
	assert.Equal(t, "October 2026", row[1].Text)
	assert.Equal(t, "month:next", row[2].CallbackData)

	row = MonthNavRow("November 2026", true)
	assert.Equal(t, "month:prev", row[0].CallbackData)
}
