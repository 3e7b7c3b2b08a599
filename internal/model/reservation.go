package model

// Reservation - одна занятая ячейка леджера
type Reservation struct {
	DateKey   string `json:"date"`    // YYYY-MM-DD
	TimeKey   string `json:"time"`    // HH:MM
	ServiceID string `json:"service"` // ID услуги, которая заняла слот
}
