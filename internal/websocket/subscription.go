package websocket

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// Subscription commands a client may send over the connection
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

var (
	// ErrUnknownEntity is returned for entity names that never produce events
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrUnknownAction is returned for commands other than subscribe and unsubscribe
	ErrUnknownAction = errors.New("unknown action")
)

// EventEntities lists the entities that produce change events, in delivery order
var EventEntities = []domain.EntityType{
	domain.EntityCategory,
	domain.EntityBudget,
	domain.EntityBudgetEntry,
}

// ParseEntity maps a wire name to its entity type
func ParseEntity(name string) (domain.EntityType, error) {
	name = strings.TrimSpace(name)
	for _, entity := range EventEntities {
		if string(entity) == name {
			return entity, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, name)
}

// ParseEntities reads a comma separated entity list such as "budget,budget_entry".
// An empty list selects every entity.
func ParseEntities(raw string) ([]domain.EntityType, error) {
	if strings.TrimSpace(raw) == "" {
		return append([]domain.EntityType(nil), EventEntities...), nil
	}

	var entities []domain.EntityType
	for _, name := range strings.Split(raw, ",") {
		entity, err := ParseEntity(name)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Command is a control message read from the client
type Command struct {
	Action   string   `json:"action"`
	Entities []string `json:"entities"`
}

// Subscription is the set of entities one connection listens to.
// It is safe for concurrent use.
type Subscription struct {
	mu       sync.RWMutex
	entities map[domain.EntityType]bool
}

// NewSubscription creates a subscription to the given entities
func NewSubscription(entities ...domain.EntityType) *Subscription {
	s := &Subscription{entities: make(map[domain.EntityType]bool, len(EventEntities))}
	for _, entity := range entities {
		s.entities[entity] = true
	}
	return s
}

// Wants reports whether events about entity should be delivered
func (s *Subscription) Wants(entity domain.EntityType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities[entity]
}

// Entities returns the subscribed entities in delivery order
func (s *Subscription) Entities() []domain.EntityType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.EntityType, 0, len(s.entities))
	for _, entity := range EventEntities {
		if s.entities[entity] {
			out = append(out, entity)
		}
	}
	return out
}

// Apply executes a command. An invalid command leaves the subscription unchanged.
func (s *Subscription) Apply(cmd Command) error {
	if cmd.Action != ActionSubscribe && cmd.Action != ActionUnsubscribe {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	entities := make([]domain.EntityType, 0, len(cmd.Entities))
	for _, name := range cmd.Entities {
		entity, err := ParseEntity(name)
		if err != nil {
			return err
		}
		entities = append(entities, entity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entity := range entities {
		if cmd.Action == ActionSubscribe {
			s.entities[entity] = true
		} else {
			delete(s.entities, entity)
		}
	}
	return nil
}
