package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConnectionsStorageTestSuite struct {
	PostgresTestSuite
}

func TestConnectionsStorageTestSuite(t *testing.T) {
	suite.Run(t, &ConnectionsStorageTestSuite{})
}

func (s *ConnectionsStorageTestSuite) Test_PutConnection() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user := s.putUser()
	store := NewConnectionsStorage(s.db)

	c := models.Connection{
		ConnectionID: uuid.NewString(),
		UserID:       user.UserID,
		UserAgent:    "test",
		IsConnected:  true,
	}
	require.NoError(s.T(), store.PutConnection(ctx, &c))
	require.NoError(s.T(), store.PutConnection(ctx, &c), "put should be idempotent")

	c.ConnectionID = uuid.NewString()
	c.UserID = uuid.New()
	assert.ErrorIs(s.T(), store.PutConnection(ctx, &c), ErrUserNotFound)

	connections, err := store.GetUserConnections(ctx, user.UserID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), connections, 1)
}

func (s *ConnectionsStorageTestSuite) Test_SetConnected() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user := s.putUser()
	store := NewConnectionsStorage(s.db)

	c := models.Connection{
		ConnectionID: uuid.NewString(),
		UserID:       user.UserID,
		IsConnected:  true,
	}
	require.NoError(s.T(), store.PutConnection(ctx, &c))

	updated, err := store.SetConnected(ctx, c.ConnectionID, false)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.UserID, updated.UserID)
	assert.False(s.T(), updated.IsConnected)

	connections, err := store.GetUserConnections(ctx, user.UserID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), connections, "disconnected connection should not be returned")

	_, err = store.SetConnected(ctx, "missing", true)
	assert.ErrorIs(s.T(), err, ErrConnectionNotFound)
}

func (s *ConnectionsStorageTestSuite) Test_GetGroupConnections() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	creator := s.putUser()
	member := s.putUser()
	leaver := s.putUser()
	stranger := s.putUser()
	group := s.putGroup("gophers", models.GroupTypePrivate, creator.UserID, member.UserID, leaver.UserID)
	require.NoError(s.T(), NewGroupsStorage(s.db).SetLeaved(ctx, group.GroupID, leaver.UserID, true))

	store := NewConnectionsStorage(s.db)
	for _, u := range []*models.User{creator, member, leaver, stranger} {
		require.NoError(s.T(), store.PutConnection(ctx, &models.Connection{
			ConnectionID: u.UserID.String(),
			UserID:       u.UserID,
			IsConnected:  true,
		}))
	}

	connections, err := store.GetGroupConnections(ctx, group.GroupID)
	require.NoError(s.T(), err)

	ids := make([]uuid.UUID, len(connections))
	for i, c := range connections {
		ids[i] = c.UserID
	}
	assert.ElementsMatch(s.T(), []uuid.UUID{creator.UserID, member.UserID}, ids)
}
