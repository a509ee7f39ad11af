package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	usecase "github.com/practice-sem-2/messenger-service/internal/usecases"
	"github.com/sirupsen/logrus"
)

type ConnectionService interface {
	Connect(ctx context.Context, userID uuid.UUID, connectionID, userAgent string) error
	Disconnect(ctx context.Context, connectionID string) error
}

// WebsocketHandler upgrades authenticated requests and runs the client until
// it disconnects.
type WebsocketHandler struct {
	upgrader    websocket.Upgrader
	hub         *Hub
	connections ConnectionService
	handler     frameHandler
	logger      logrus.FieldLogger
}

func NewWebsocketHandler(hub *Hub, connections ConnectionService, d *Dispatcher, logger logrus.FieldLogger) *WebsocketHandler {
	return &WebsocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:         hub,
		connections: connections,
		handler:     d,
		logger:      logger,
	}
}

func (h *WebsocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Debug("websocket upgrade failed")
		return
	}

	c := newClient(conn, uuid.NewString(), claims.UserID)
	logger := h.logger.
		WithField("connection_id", c.id).
		WithField("user_id", c.userID)

	ctx := context.WithoutCancel(r.Context())

	h.hub.Register(c)
	if err = h.connections.Connect(ctx, c.userID, c.id, r.UserAgent()); err != nil {
		logger.
			WithField("error_kind", usecase.Kind(err)).
			WithError(err).
			Warning("connection refused")
		h.hub.Unregister(c)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, CompletionFailed),
			time.Now().Add(writeWait),
		)
		_ = conn.Close()
		return
	}

	go func() {
		if err := c.writePump(); err != nil {
			logger.WithError(err).Debug("write loop stopped")
		}
	}()

	if err = c.readPump(ctx, h.hub, h.handler); err != nil {
		logger.WithError(err).Debug("read loop stopped")
	}

	if err = h.connections.Disconnect(ctx, c.id); err != nil {
		logger.WithError(err).Warning("can't record disconnect")
	}
	h.hub.Unregister(c)
}
