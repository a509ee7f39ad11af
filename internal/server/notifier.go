package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	"github.com/sirupsen/logrus"
)

type connectionLookup interface {
	Connections(userID uuid.UUID) []string
	ChannelMembers(channel string) []string
}

// Notifier delivers events to live websocket clients of this process. Events
// sent with ToUser and ToChannel are addressed through the notifier's own hub.
type Notifier struct {
	hub      *Hub
	presence connectionLookup
	scope    models.Hub
	metrics  *Metrics
	logger   logrus.FieldLogger
}

func NewNotifier(hub *Hub, presence connectionLookup, scope models.Hub, metrics *Metrics, logger logrus.FieldLogger) *Notifier {
	return &Notifier{
		hub:      hub,
		presence: presence,
		scope:    scope,
		metrics:  metrics,
		logger:   logger,
	}
}

// WithHub returns a notifier sharing the same clients but addressing events
// through scope.
func (n *Notifier) WithHub(scope models.Hub) *Notifier {
	scoped := *n
	scoped.scope = scope
	return &scoped
}

func (n *Notifier) ToUser(ctx context.Context, userID uuid.UUID, event models.Event) {
	n.deliver(n.scope, event, n.presence.Connections(userID))
}

func (n *Notifier) ToChannel(ctx context.Context, channel string, event models.Event) {
	n.deliver(n.scope, event, n.presence.ChannelMembers(channel))
}

func (n *Notifier) ToUserOnHub(ctx context.Context, hub models.Hub, userID uuid.UUID, event models.Event) {
	n.deliver(hub, event, n.presence.Connections(userID))
}

func (n *Notifier) deliver(hub models.Hub, event models.Event, connections []string) {
	if len(connections) == 0 {
		return
	}

	payload, err := encodeEvent(hub, event)
	if err != nil {
		n.logger.
			WithError(err).
			WithField("hub", hub).
			WithField("target", event.Target).
			Error("can't encode event")
		return
	}

	delivered := 0
	for _, id := range connections {
		if n.hub.Send(id, payload) {
			delivered++
		}
	}
	n.metrics.EventsDelivered(hub, event.Target, delivered)
}
