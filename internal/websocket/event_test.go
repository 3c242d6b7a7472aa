package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{"id": 1, "name": "Rent"}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, domain.EntityBudgetEntry, payload)
	after := time.Now()

	assert.Equal(t, "budget_entry.created", evt.Type)
	assert.Equal(t, domain.EntityBudgetEntry, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	evt := Event{
		Type:      "budget.updated",
		Entity:    domain.EntityBudget,
		Payload:   map[string]interface{}{"id": float64(7), "name": "March"},
		Timestamp: fixedTime,
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "budget.updated", decoded["type"])
	assert.Equal(t, "budget", decoded["entity"])
	assert.Equal(t, "2026-03-01T09:00:00Z", decoded["timestamp"])
	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), payload["id"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": float64(1)}

	tests := []struct {
		name   string
		event  Event
		typ    string
		entity domain.EntityType
	}{
		{"CategoryCreated", CategoryCreated(payload), "category.created", domain.EntityCategory},
		{"CategoryUpdated", CategoryUpdated(payload), "category.updated", domain.EntityCategory},
		{"CategoryDeleted", CategoryDeleted(payload), "category.deleted", domain.EntityCategory},
		{"BudgetCreated", BudgetCreated(payload), "budget.created", domain.EntityBudget},
		{"BudgetUpdated", BudgetUpdated(payload), "budget.updated", domain.EntityBudget},
		{"BudgetDeleted", BudgetDeleted(payload), "budget.deleted", domain.EntityBudget},
		{"BudgetEntryCreated", BudgetEntryCreated(payload), "budget_entry.created", domain.EntityBudgetEntry},
		{"BudgetEntryUpdated", BudgetEntryUpdated(payload), "budget_entry.updated", domain.EntityBudgetEntry},
		{"BudgetEntryDeleted", BudgetEntryDeleted(payload), "budget_entry.deleted", domain.EntityBudgetEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.event.Type)
			assert.Equal(t, tt.entity, tt.event.Entity)
			assert.Equal(t, payload, tt.event.Payload)
		})
	}
}
