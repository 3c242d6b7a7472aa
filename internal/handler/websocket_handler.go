package handler

import (
	"context"
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// Query parameters of GET /ws
const (
	wsTokenParam    = "token"
	wsEntitiesParam = "entities"
)

// TokenValidator authenticates the token a browser passes on the upgrade request
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.Principal, error)
}

// WebSocketHandler upgrades GET /ws to a change feed of the caller's records
type WebSocketHandler struct {
	hub       *websocket.Hub
	validator TokenValidator
	origins   map[string]bool
	upgrader  ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler accepting browser upgrades from allowedOrigins
func NewWebSocketHandler(hub *websocket.Hub, validator TokenValidator, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:       hub,
		validator: validator,
		origins:   make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		h.origins[origin] = true
	}
	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin admits non-browser clients, which send no Origin, and the configured origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.origins[origin] {
		return true
	}
	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles GET /ws?token=<jwt>&entities=budget,budget_entry.
// Without entities every event kind the caller may list is delivered.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	raw := c.QueryParam(wsTokenParam)
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	principal, err := h.validator.ValidateToken(c.Request().Context(), raw)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	entities, err := websocket.ParseEntities(c.QueryParam(wsEntitiesParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Int64("user_id", principal.UserID).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, principal, websocket.NewSubscription(entities...), h.hub)
	log.Info().
		Int64("user_id", principal.UserID).
		Str("client_id", client.ID()).
		Interface("entities", entities).
		Msg("WebSocket client connected")

	go client.Serve()
	return nil
}
