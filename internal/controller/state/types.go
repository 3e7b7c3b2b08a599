package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/service"
)

// SessionFactory создаёт новую сессию для чата, у которого её ещё нет
type SessionFactory func() *service.Session

// entry хранит сессию одного чата. mu сериализует обработку апдейтов этого чата.
type entry struct {
	mu       sync.Mutex
	session  *service.Session
	lastSeen time.Time
}
