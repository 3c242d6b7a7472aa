package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/access"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// Subscriber is a connection the hub can deliver events to
type Subscriber interface {
	ID() string
	// Principal is the authenticated identity behind the connection; nil when anonymous
	Principal() *domain.Principal
	Wants(entity domain.EntityType) bool
	Send(data []byte) error
	Close() error
}

// Hub routes change events to the subscribers allowed to list the changed record.
// It is safe for concurrent use.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
}

var _ EventPublisher = (*Hub)(nil)

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]Subscriber)}
}

// Register starts delivering events to s
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	h.subscribers[s.ID()] = s
	h.mu.Unlock()

	log.Debug().
		Int64("user_id", userIDOf(s.Principal())).
		Str("client_id", s.ID()).
		Msg("WebSocket client registered")
}

// Unregister stops delivering events to s; unknown subscribers are ignored
func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[s.ID()]
	delete(h.subscribers, s.ID())
	h.mu.Unlock()

	if ok {
		log.Debug().
			Int64("user_id", userIDOf(s.Principal())).
			Str("client_id", s.ID()).
			Msg("WebSocket client unregistered")
	}
}

// Publish delivers an event about a record owned by ownerID. A subscriber receives it
// when it listens to the event's entity and its principal may list the record.
func (h *Hub) Publish(ownerID int64, event Event) {
	recipients := h.recipients(ownerID, event.Entity)
	if len(recipients) == 0 {
		return
	}

	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	// Send never blocks; a slow peer loses the event
	for _, s := range recipients {
		if err := s.Send(data); err != nil {
			log.Warn().
				Err(err).
				Str("client_id", s.ID()).
				Str("event_type", event.Type).
				Msg("Failed to send to client")
		}
	}

	log.Debug().
		Int64("owner_id", ownerID).
		Str("event_type", event.Type).
		Int("client_count", len(recipients)).
		Msg("Published event")
}

func (h *Hub) recipients(ownerID int64, entity domain.EntityType) []Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Subscriber
	for _, s := range h.subscribers {
		if s.Wants(entity) && CanList(s.Principal(), entity, ownerID) {
			out = append(out, s)
		}
	}
	return out
}

// CanList reports whether principal would see a record of entity owned by ownerID
// in its own list of that entity
func CanList(principal *domain.Principal, entity domain.EntityType, ownerID int64) bool {
	scope, err := access.Resolve(entity, principal, domain.IntentList)
	if err != nil {
		return false
	}
	return scope.Permits(ownerID)
}

// ClientCount returns the number of connections authenticated as userID
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, s := range h.subscribers {
		if p := s.Principal(); p != nil && p.UserID == userID {
			n++
		}
	}
	return n
}

// TotalClientCount returns the number of registered connections
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func userIDOf(p *domain.Principal) int64 {
	if p == nil {
		return 0
	}
	return p.UserID
}
