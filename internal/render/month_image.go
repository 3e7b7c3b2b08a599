package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"sync"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	cellSize        = 110
	cellPadding     = 6
	marginX         = 30
	headerHeight    = 90
	weekdayHeight   = 40
	legendHeight    = 60
	totalDaysInWeek = 7
	cellRadius      = 10.0
	shadowOffset    = 3.0

	imageWidth = marginX*2 + cellSize*totalDaysInWeek
)

// Константы шрифтов
const (
	titleFontSize   = 34.0
	weekdayFontSize = 20.0
	dayFontSize     = 28.0
	noteFontSize    = 14.0
	legendFontSize  = 16.0
)

// Цветовая схема
var (
	bgColor      = color.RGBA{245, 246, 248, 255}
	textColor    = color.RGBA{80, 85, 90, 230}
	weekdayColor = color.RGBA{110, 115, 120, 220}

	pastDayColor      = color.RGBA{225, 225, 225, 255}
	pastTextColor     = color.RGBA{165, 165, 165, 255}
	openDayColor      = color.RGBA{133, 193, 85, 220}
	fullDayColor      = color.RGBA{255, 182, 193, 255}
	fullTextColor     = color.RGBA{120, 40, 50, 255}
	selectedDayColor  = color.RGBA{52, 120, 246, 255}
	selectedTextColor = color.RGBA{255, 255, 255, 255}
	todayBorderColor  = color.NRGBA{255, 99, 71, 230}
	shadowColor       = color.RGBA{0, 0, 0, 20}
)

var (
	fontsOnce   sync.Once
	cachedFonts map[FontStyle]*opentype.Font
)

// parseFonts разбирает встроенные Go-шрифты один раз на процесс
func parseFonts() {
	cachedFonts = make(map[FontStyle]*opentype.Font)
	sources := map[FontStyle][]byte{
		FontStyleDefault: goregular.TTF,
		FontStyleBold:    gobold.TTF,
	}
	for style, data := range sources {
		if parsed, err := opentype.Parse(data); err == nil {
			cachedFonts[style] = parsed
		}
	}
}

// loadFont устанавливает шрифт указанного стиля или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(parseFonts)

	if parsed, ok := cachedFonts[style]; ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// MonthImage рисует PNG с просматриваемым месяцем: прошедшие дни серые,
// выбранный день выделен, полностью занятые дни помечены
func MonthImage(view *service.View) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("render month: nil view")
	}

	rows := len(view.Weeks)
	height := headerHeight + weekdayHeight + rows*cellSize + legendHeight

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, view.Month)
	drawWeekdays(dc)
	for rowIdx, week := range view.Weeks {
		y := float64(headerHeight + weekdayHeight + rowIdx*cellSize)
		for colIdx, cell := range week {
			if cell.Empty {
				continue
			}
			x := float64(marginX + colIdx*cellSize)
			drawDay(dc, cell, x, y)
		}
	}
	drawLegend(dc, float64(headerHeight+weekdayHeight+rows*cellSize))

	return encodeImage(dc)
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, month calendar.Date) {
	title := fmt.Sprintf("%s %d", month.Month, month.Year)

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/2, 0.5, 0.5)
}

// drawWeekdays рисует строку Sun..Sat
func drawWeekdays(dc *gg.Context) {
	loadFont(dc, weekdayFontSize, FontStyleBold)
	dc.SetColor(weekdayColor)

	y := float64(headerHeight) + float64(weekdayHeight)/2
	for i, name := range calendar.WeekdayNames {
		x := float64(marginX+i*cellSize) + float64(cellSize)/2
		dc.DrawStringAnchored(name, x, y, 0.5, 0.5)
	}
}

// drawDay рисует клетку одного дня
func drawDay(dc *gg.Context, cell service.DayCell, x, y float64) {
	fill, text := dayColors(cell)
	side := float64(cellSize - cellPadding*2)
	cx, cy := x+cellPadding, y+cellPadding

	// Тень
	if cell.Selectable {
		dc.SetColor(shadowColor)
		dc.DrawRoundedRectangle(cx+shadowOffset, cy+shadowOffset, side, side, cellRadius)
		dc.Fill()
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(cx, cy, side, side, cellRadius)
	dc.Fill()

	if cell.Today {
		dc.SetColor(todayBorderColor)
		dc.SetLineWidth(3)
		dc.DrawRoundedRectangle(cx, cy, side, side, cellRadius)
		dc.Stroke()
	}

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(text)
	dc.DrawStringAnchored(strconv.Itoa(cell.Date.Day), cx+side/2, cy+side/2-6, 0.5, 0.5)

	if cell.Selectable && cell.FullyBooked {
		loadFont(dc, noteFontSize, FontStyleDefault)
		dc.DrawStringAnchored("full", cx+side/2, cy+side-14, 0.5, 0.5)
	}
}

// dayColors возвращает цвет заливки и текста клетки. Выбор важнее занятости.
func dayColors(cell service.DayCell) (fill, text color.Color) {
	switch {
	case !cell.Selectable:
		return pastDayColor, pastTextColor
	case cell.Selected:
		return selectedDayColor, selectedTextColor
	case cell.FullyBooked:
		return fullDayColor, fullTextColor
	default:
		return openDayColor, textColor
	}
}

// drawLegend рисует легенду под сеткой
func drawLegend(dc *gg.Context, top float64) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Open", openDayColor},
		{"Fully booked", fullDayColor},
		{"Selected", selectedDayColor},
		{"Past", pastDayColor},
	}

	boxW, boxH := 22.0, 16.0
	x := float64(marginX)
	y := top + float64(legendHeight)/2 - boxH/2

	loadFont(dc, legendFontSize, FontStyleDefault)
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.Label, x+boxW+8, y+boxH/2, 0, 0.35)
		w, _ := dc.MeasureString(item.Label)
		x += boxW + 8 + w + 28
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
