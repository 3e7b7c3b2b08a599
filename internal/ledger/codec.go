package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedData = errors.New("malformed persisted ledger")

// Bookings - dateKey -> timeKey -> serviceID
type Bookings map[string]map[string]string

// Decode разбирает содержимое блоба. Пустой блоб даёт пустой леджер без ошибки,
// всё, что не является объектом объектов строк, даёт ErrMalformedData.
// Записи с неверными ключами или без услуги (null) отбрасываются: такой слот свободен.
func Decode(data []byte) (Bookings, error) {
	if len(data) == 0 {
		return Bookings{}, nil
	}

	var bookings Bookings
	if err := json.Unmarshal(data, &bookings); err != nil {
		return Bookings{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if bookings == nil {
		// литерал null
		return Bookings{}, nil
	}
	for dateKey, times := range bookings {
		for timeKey, serviceID := range times {
			if serviceID == "" || validateKeys(dateKey, timeKey) != nil {
				delete(times, timeKey)
			}
		}
		if len(times) == 0 {
			delete(bookings, dateKey)
		}
	}
	return bookings, nil
}

// Encode сериализует леджер целиком
func Encode(bookings Bookings) ([]byte, error) {
	data, err := json.Marshal(bookings)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}

// clone возвращает глубокую копию
func (b Bookings) clone() Bookings {
	out := make(Bookings, len(b))
	for dateKey, times := range b {
		inner := make(map[string]string, len(times))
		for timeKey, serviceID := range times {
			inner[timeKey] = serviceID
		}
		out[dateKey] = inner
	}
	return out
}
