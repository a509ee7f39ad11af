package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

//go:generate mockgen -destination=../mocks/ports.go -package=mocks github.com/practice-sem-2/messenger-service/internal/usecases Notifier,ChannelRouter,Presence,ImageStore,SessionCloser

// Notifier delivers events to live connections. Delivery is best effort:
// targets without live connections are skipped.
type Notifier interface {
	ToUser(ctx context.Context, userID uuid.UUID, event models.Event)
	ToChannel(ctx context.Context, channel string, event models.Event)
	ToUserOnHub(ctx context.Context, hub models.Hub, userID uuid.UUID, event models.Event)
}

// ChannelRouter manages channel membership of connections. Connections that
// are not live are ignored.
type ChannelRouter interface {
	AddToChannel(channel string, connectionIDs ...string)
	RemoveFromChannel(channel string, connectionIDs ...string)
}

// Presence tracks live connections of users.
type Presence interface {
	ChannelRouter
	Register(userID uuid.UUID, connectionID string)
	Unregister(connectionID string)
}

// SessionCloser drops the live sessions of a user and reports how many were
// closed.
type SessionCloser interface {
	CloseUserSessions(userID uuid.UUID) int
}

type ImageStore interface {
	PresignedUploadURL(ctx context.Context, imageID uuid.UUID) (string, error)
	Remove(ctx context.Context, imageID uuid.UUID) error
}

// GroupChannel names the broadcast channel of a group.
func GroupChannel(groupID uuid.UUID) string {
	return groupID.String()
}

func connectionIDs(connections []models.Connection) []string {
	ids := make([]string, len(connections))
	for i, c := range connections {
		ids[i] = c.ConnectionID
	}
	return ids
}
