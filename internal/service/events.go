package service

import (
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// eventSource is embedded by services that emit change events
type eventSource struct {
	eventPublisher websocket.EventPublisher
}

// SetEventPublisher sets the publisher for real-time updates
func (e *eventSource) SetEventPublisher(publisher websocket.EventPublisher) {
	e.eventPublisher = publisher
}

// publishEvent publishes an event if a publisher is configured
func (e *eventSource) publishEvent(userID int64, event websocket.Event) {
	if e.eventPublisher != nil {
		e.eventPublisher.Publish(userID, event)
	}
}
