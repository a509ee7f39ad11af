package usecases

import (
	"context"

	"github.com/practice-sem-2/messenger-service/internal/models"
	storage "github.com/practice-sem-2/messenger-service/internal/storages"
	"github.com/sirupsen/logrus"
)

const SearchUsersLimit = 10

type UsersUsecase struct {
	registry storage.Registry
	sessions SessionCloser
	logger   logrus.FieldLogger
}

func NewUsersUsecase(r storage.Registry, sessions SessionCloser, logger logrus.FieldLogger) *UsersUsecase {
	return &UsersUsecase{
		registry: r,
		sessions: sessions,
		logger:   logger,
	}
}

// BanUsers bans and unbans users in one transaction. Live sessions of newly
// banned users are closed once the ban is committed.
func (u *UsersUsecase) BanUsers(ctx context.Context, mod models.BanModification) error {
	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		users := r.GetUsersStore()
		if err := users.SetBan(ctx, mod.BanIDs, true); err != nil {
			return err
		}
		return users.SetBan(ctx, mod.UnbanIDs, false)
	})
	if err != nil {
		return storageError(err)
	}

	for _, id := range mod.BanIDs {
		if closed := u.sessions.CloseUserSessions(id); closed > 0 {
			u.logger.
				WithField("user_id", id).
				WithField("sessions", closed).
				Info("closed sessions of banned user")
		}
	}
	return nil
}

// SearchUsers returns banned and not banned users whose email contains
// emailPart, at most SearchUsersLimit of each.
func (u *UsersUsecase) SearchUsers(ctx context.Context, emailPart string) (*models.UserBanModel, error) {
	store := u.registry.GetUsersStore()

	banned, err := store.SearchByEmail(ctx, emailPart, true, SearchUsersLimit)
	if err != nil {
		return nil, storageError(err)
	}

	free, err := store.SearchByEmail(ctx, emailPart, false, SearchUsersLimit)
	if err != nil {
		return nil, storageError(err)
	}

	result := models.UserBanModel{
		BannedUsers:   make([]models.SimpleUserModel, len(banned)),
		NoBannedUsers: make([]models.SimpleUserModel, len(free)),
	}
	for i := range banned {
		result.BannedUsers[i] = simpleUser(&banned[i])
	}
	for i := range free {
		result.NoBannedUsers[i] = simpleUser(&free[i])
	}
	return &result, nil
}
