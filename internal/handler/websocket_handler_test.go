package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// tokenTable maps raw tokens to the principals they authenticate
type tokenTable map[string]*domain.Principal

func (tt tokenTable) ValidateToken(_ context.Context, raw string) (*domain.Principal, error) {
	if p, ok := tt[raw]; ok {
		return p, nil
	}
	return nil, errors.New("bad signature")
}

var (
	testAllowedOrigins = []string{"http://localhost:3000", "https://budgetbook.app"}
	testTokens         = tokenTable{
		"alice-token": {UserID: 7, Username: "alice"},
		"bob-token":   {UserID: 8, Username: "bob"},
	}
)

func TestWebSocketHandler_RejectsBeforeUpgrade(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), testTokens, testAllowedOrigins)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"invalid token", "?token=forged", http.StatusUnauthorized},
		{"unknown entity", "?token=alice-token&entities=budget,attachment", http.StatusBadRequest},
		{"unknown entity without token", "?entities=attachment", http.StatusUnauthorized},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws"+tt.query, nil), httptest.NewRecorder())

			err := h.HandleWS(c)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.want, httpErr.Code)
		})
	}
}

func TestWebSocketHandler_ValidTokenWithoutUpgrade(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), testTokens, testAllowedOrigins)
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws?token=alice-token", nil), httptest.NewRecorder())

	err := h.HandleWS(c)

	// Authentication passed; gorilla/websocket refuses the plain GET
	require.Error(t, err)
	var httpErr *echo.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), testTokens, testAllowedOrigins)

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"https://budgetbook.app", true},
		{"https://evil.com", false},
		{"", true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, h.checkOrigin(req), "origin %q", tt.origin)
	}
}

// dialFeed opens a live connection and waits until the hub has registered it
func dialFeed(t *testing.T, hub *websocket.Hub, server *httptest.Server, query string, userID int64) *ws.Conn {
	t.Helper()
	before := hub.ClientCount(userID)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?" + query
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount(userID) == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *ws.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func TestWebSocketHandler_FeedFollowsOwnershipAndSubscription(t *testing.T) {
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, testTokens, testAllowedOrigins)
	e := echo.New()
	e.GET("/ws", h.HandleWS)
	server := httptest.NewServer(e)
	defer server.Close()

	alice := dialFeed(t, hub, server, "token=alice-token&entities=budget_entry", 7)
	bob := dialFeed(t, hub, server, "token=bob-token", 8)

	// Alice is not subscribed to budgets, and Bob never sees Alice's records
	hub.Publish(7, websocket.BudgetCreated(map[string]int64{"id": 3}))
	hub.Publish(7, websocket.BudgetEntryCreated(map[string]int64{"id": 30}))
	hub.Publish(8, websocket.BudgetDeleted(map[string]int64{"id": 4}))

	got := readEvent(t, alice)
	assert.Equal(t, "budget_entry.created", got["type"])
	assert.Equal(t, "budget_entry", got["entity"])
	assert.Equal(t, "budget.deleted", readEvent(t, bob)["type"])

	require.NoError(t, alice.WriteJSON(websocket.Command{Action: websocket.ActionSubscribe, Entities: []string{"budget"}}))
	ack := readEvent(t, alice)
	assert.Equal(t, websocket.TypeSubscribed, ack["type"])
	assert.Equal(t, map[string]any{"entities": []any{"budget", "budget_entry"}}, ack["payload"])

	hub.Publish(7, websocket.BudgetUpdated(map[string]int64{"id": 3}))
	assert.Equal(t, "budget.updated", readEvent(t, alice)["type"])

	require.NoError(t, alice.WriteJSON(websocket.Command{Action: websocket.ActionSubscribe, Entities: []string{"attachment"}}))
	assert.Equal(t, websocket.TypeSubscriptionFailed, readEvent(t, alice)["type"])
}
