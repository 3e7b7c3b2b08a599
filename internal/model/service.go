package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyCatalog     = errors.New("service catalog is empty")
	ErrDuplicateService = errors.New("duplicate service id")
	ErrInvalidService   = errors.New("invalid service definition")
)

// MaxServiceIDLen - ID услуги попадает в callback data кнопки слота (лимит Telegram 64 байта)
const MaxServiceIDLen = 32

// Service - позиция каталога услуг (стрижка, стрижка + борода и т.д.)
type Service struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Duration int    `json:"duration"` // в минутах
}

// Catalog неизменяемый список услуг, порядок задаёт порядок кнопок
type Catalog []Service

// DefaultCatalog возвращает каталог по умолчанию
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "hair", Label: "Haircut", Duration: 30},
		{ID: "combo", Label: "Hair + Beard", Duration: 60},
	}
}

// Find ищет услугу по ID
func (c Catalog) Find(id string) (Service, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// LabelOf возвращает название услуги или сам ID, если услуги уже нет в каталоге
func (c Catalog) LabelOf(id string) string {
	if s, ok := c.Find(id); ok {
		return s.Label
	}
	return id
}

// Validate проверяет что каталог не пуст, ID уникальны и длительности положительны
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c))
	for _, s := range c {
		if s.ID == "" || len(s.ID) > MaxServiceIDLen || s.Label == "" || s.Duration <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidService, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateService, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// ParseCatalog разбирает строку вида "hair:Haircut:30,combo:Hair + Beard:60"
func ParseCatalog(raw string) (Catalog, error) {
	var catalog Catalog
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidService, item)
		}

		duration, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: duration %q", ErrInvalidService, parts[2])
		}

		catalog = append(catalog, Service{
			ID:       strings.TrimSpace(parts[0]),
			Label:    strings.TrimSpace(parts[1]),
			Duration: duration,
		})
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
