package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// EventType is what happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// Event types sent in reply to subscription commands
const (
	TypeSubscribed         = "subscription.updated"
	TypeSubscriptionFailed = "subscription.rejected"
)

// Event is the message pushed to clients: { type, entity, payload, timestamp }
type Event struct {
	Type      string            `json:"type"` // e.g. "budget.created"
	Entity    domain.EntityType `json:"entity,omitempty"`
	Payload   interface{}       `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType domain.EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, domain.EntityCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, domain.EntityCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, domain.EntityCategory, payload)
}

// BudgetCreated creates a budget.created event
func BudgetCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, domain.EntityBudget, payload)
}

// BudgetUpdated creates a budget.updated event
func BudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, domain.EntityBudget, payload)
}

// BudgetDeleted creates a budget.deleted event
func BudgetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, domain.EntityBudget, payload)
}

// BudgetEntryCreated creates a budget_entry.created event
func BudgetEntryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, domain.EntityBudgetEntry, payload)
}

// BudgetEntryUpdated creates a budget_entry.updated event
func BudgetEntryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, domain.EntityBudgetEntry, payload)
}

// BudgetEntryDeleted creates a budget_entry.deleted event
func BudgetEntryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, domain.EntityBudgetEntry, payload)
}

// subscriptionEvent answers a subscription command on the connection that sent it
func subscriptionEvent(eventType string, payload interface{}) Event {
	return Event{Type: eventType, Payload: payload, Timestamp: time.Now().UTC()}
}
