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

type UsersStorageTestSuite struct {
	PostgresTestSuite
}

func TestUsersStorageTestSuite(t *testing.T) {
	suite.Run(t, &UsersStorageTestSuite{})
}

func (s *UsersStorageTestSuite) Test_PutUser_EmailTaken() {
	user := s.putUser()

	err := NewUsersStorage(s.db).PutUser(context.Background(), &models.User{
		UserID: uuid.New(),
		Email:  user.Email,
	})
	assert.ErrorIs(s.T(), err, ErrUserAlreadyExists)
}

func (s *UsersStorageTestSuite) Test_GetUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := s.putUser()
	second := s.putUser()
	s.putUser()

	store := NewUsersStorage(s.db)
	users, err := store.GetUsers(ctx, []uuid.UUID{first.UserID, second.UserID})
	require.NoError(s.T(), err)
	assert.Len(s.T(), users, 2)

	users, err = store.GetUsers(ctx, nil)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), users)

	_, err = store.GetUser(ctx, uuid.New())
	assert.ErrorIs(s.T(), err, ErrUserNotFound)
}

func (s *UsersStorageTestSuite) Test_SetBan_SearchByEmail() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := NewUsersStorage(s.db)
	users := make([]models.User, 3)
	for i, email := range []string{"ann@gophers.dev", "bob@gophers.dev", "carl@rustaceans.dev"} {
		users[i] = models.User{UserID: uuid.New(), Email: email}
		require.NoError(s.T(), store.PutUser(ctx, &users[i]))
	}

	require.NoError(s.T(), store.SetBan(ctx, []uuid.UUID{users[1].UserID}, true))

	banned, err := store.SearchByEmail(ctx, "gophers", true, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), banned, 1)
	assert.Equal(s.T(), users[1].UserID, banned[0].UserID)

	free, err := store.SearchByEmail(ctx, "gophers", false, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), free, 1)
	assert.Equal(s.T(), users[0].UserID, free[0].UserID)
}
