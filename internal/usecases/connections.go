package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	storage "github.com/practice-sem-2/messenger-service/internal/storages"
	"github.com/sirupsen/logrus"
)

var ErrUserBanned = fmt.Errorf("%w: user is banned", ErrForbidden)

type ConnectionsUsecase struct {
	registry storage.Registry
	presence Presence
	logger   logrus.FieldLogger
}

func NewConnectionsUsecase(r storage.Registry, p Presence, logger logrus.FieldLogger) *ConnectionsUsecase {
	return &ConnectionsUsecase{
		registry: r,
		presence: p,
		logger:   logger,
	}
}

// Connect records a live connection and subscribes it to the channel of every
// group the user actively belongs to.
func (u *ConnectionsUsecase) Connect(ctx context.Context, userID uuid.UUID, connectionID, userAgent string) error {
	var groupIDs []uuid.UUID

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		user, err := r.GetUsersStore().GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsInBan {
			return ErrUserBanned
		}

		err = r.GetConnectionsStore().PutConnection(ctx, &models.Connection{
			ConnectionID: connectionID,
			UserID:       userID,
			UserAgent:    userAgent,
			IsConnected:  true,
		})
		if err != nil {
			return err
		}

		groupIDs, err = r.GetGroupsStore().GetActiveGroupIDs(ctx, userID)
		return err
	})

	if err != nil {
		return storageError(err)
	}

	u.presence.Register(userID, connectionID)
	for _, id := range groupIDs {
		u.presence.AddToChannel(GroupChannel(id), connectionID)
	}

	u.dropEndedMemberships(ctx, userID, connectionID, groupIDs)
	return nil
}

// dropEndedMemberships unsubscribes connectionID from groups the user left
// after their memberships were read but before the subscriptions were made.
func (u *ConnectionsUsecase) dropEndedMemberships(ctx context.Context, userID uuid.UUID, connectionID string, subscribed []uuid.UUID) {
	if len(subscribed) == 0 {
		return
	}

	active, err := u.registry.GetGroupsStore().GetActiveGroupIDs(ctx, userID)
	if err != nil {
		u.logger.
			WithError(err).
			WithField("connection_id", connectionID).
			Warning("can't recheck group subscriptions")
		return
	}

	still := make(map[uuid.UUID]struct{}, len(active))
	for _, id := range active {
		still[id] = struct{}{}
	}
	for _, id := range subscribed {
		if _, ok := still[id]; !ok {
			u.presence.RemoveFromChannel(GroupChannel(id), connectionID)
		}
	}
}

// Disconnect drops the connection from presence and flags its row. The
// connection leaves presence even if the store update fails.
func (u *ConnectionsUsecase) Disconnect(ctx context.Context, connectionID string) error {
	u.presence.Unregister(connectionID)

	_, err := u.registry.GetConnectionsStore().SetConnected(ctx, connectionID, false)
	if errors.Is(err, storage.ErrConnectionNotFound) {
		u.logger.WithField("connection_id", connectionID).Debug("disconnected unknown connection")
		return nil
	}
	return storageError(err)
}
