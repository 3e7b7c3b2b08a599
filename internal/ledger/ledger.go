package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"go.uber.org/zap"
)

var (
	ErrAlreadyBooked = errors.New("slot is already booked")
	ErrInvalidKey    = errors.New("invalid ledger key")
)

// BlobStore - внешнее хранилище одного именованного блоба. Get возвращает nil, nil,
// если ключа нет.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LoadResult - чем закончилась загрузка леджера
type LoadResult string

const (
	LoadOK        LoadResult = "ok"
	LoadMissing   LoadResult = "missing"
	LoadMalformed LoadResult = "malformed"
)

// Observer получает события леджера (метрики)
type Observer interface {
	ObserveLoad(result LoadResult)
	ObserveClaim(result string)
}

// Ledger - единственный источник истины о занятых слотах
type Ledger struct {
	mu       sync.Mutex
	store    BlobStore
	key      string
	bookings Bookings
	observer Observer
	logger   *zap.Logger
}

// Open загружает леджер из хранилища. Отсутствующий или битый блоб даёт пустой леджер;
// ошибкой считается только отказ самого хранилища.
func Open(ctx context.Context, store BlobStore, key string, observer Observer, logger *zap.Logger) (*Ledger, error) {
	l := &Ledger{
		store:    store,
		key:      key,
		observer: observer,
		logger:   logger,
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	result := LoadOK
	if data == nil {
		result = LoadMissing
	}

	bookings, err := Decode(data)
	if err != nil {
		logger.Warn("Persisted ledger is malformed, starting empty",
			zap.String("key", key),
			zap.Error(err))
		result = LoadMalformed
	}
	l.bookings = bookings

	if observer != nil {
		observer.ObserveLoad(result)
	}

	logger.Info("Ledger loaded",
		zap.String("key", key),
		zap.String("result", string(result)),
		zap.Int("reservations", l.count()))

	return l, nil
}

// IsBooked - чистый поиск без побочных эффектов
func (l *Ledger) IsBooked(dateKey, timeKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.bookings[dateKey][timeKey]
	return ok
}

// BookedTimes возвращает занятые времена дня (копия)
func (l *Ledger) BookedTimes(dateKey string) map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]string, len(l.bookings[dateKey]))
	for timeKey, serviceID := range l.bookings[dateKey] {
		out[timeKey] = serviceID
	}
	return out
}

// Claim атомарно занимает слот, если он свободен. Новый леджер сначала записывается
// в хранилище и только потом становится видимым в памяти. Слот считается занятым
// независимо от того, какая услуга его заняла.
func (l *Ledger) Claim(ctx context.Context, dateKey, timeKey, serviceID string) error {
	if err := validateKeys(dateKey, timeKey); err != nil {
		return err
	}
	if serviceID == "" {
		return fmt.Errorf("%w: empty service id", ErrInvalidKey)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.bookings[dateKey][timeKey]; taken {
		l.observe("already_booked")
		return ErrAlreadyBooked
	}

	next := l.bookings.clone()
	if next[dateKey] == nil {
		next[dateKey] = make(map[string]string)
	}
	next[dateKey][timeKey] = serviceID

	data, err := Encode(next)
	if err != nil {
		l.observe("error")
		return err
	}
	if err := l.store.Set(ctx, l.key, data); err != nil {
		l.observe("error")
		return fmt.Errorf("persist ledger: %w", err)
	}

	l.bookings = next
	l.observe("ok")

	l.logger.Info("Slot claimed",
		zap.String("date", dateKey),
		zap.String("time", timeKey),
		zap.String("service", serviceID))

	return nil
}

// List разворачивает леджер в список, отсортированный по дате, затем по времени
func (l *Ledger) List() []model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	reservations := make([]model.Reservation, 0, l.count())
	for dateKey, times := range l.bookings {
		for timeKey, serviceID := range times {
			reservations = append(reservations, model.Reservation{
				DateKey:   dateKey,
				TimeKey:   timeKey,
				ServiceID: serviceID,
			})
		}
	}

	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].DateKey == reservations[j].DateKey {
			return reservations[i].TimeKey < reservations[j].TimeKey
		}
		return reservations[i].DateKey < reservations[j].DateKey
	})

	return reservations
}

// Recent возвращает первые n записей List; n <= 0 означает все
func (l *Ledger) Recent(n int) []model.Reservation {
	all := l.List()
	if n > 0 && len(all) > n {
		return all[:n]
	}
	return all
}

// Snapshot возвращает копию содержимого леджера
func (l *Ledger) Snapshot() Bookings {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bookings.clone()
}

func (l *Ledger) count() int {
	n := 0
	for _, times := range l.bookings {
		n += len(times)
	}
	return n
}

func (l *Ledger) observe(result string) {
	if l.observer != nil {
		l.observer.ObserveClaim(result)
	}
}

func validateKeys(dateKey, timeKey string) error {
	if _, err := calendar.ParseKey(dateKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if _, err := slots.ParseClock(timeKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return nil
}
