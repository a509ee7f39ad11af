package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

var ErrUserAlreadyExists = errors.New("user with provided email already exists")

const UsersEmailKey = "users_email_key"

var userColumns = []string{"user_id", "email", "first_name", "last_name", "is_in_ban", "image_id"}

type UsersStorage struct {
	db Scope
}

func NewUsersStorage(db Scope) *UsersStorage {
	return &UsersStorage{
		db: db,
	}
}

// PutUser upserts a user row. Users are registered elsewhere; this keeps the
// local copy in sync.
func (s *UsersStorage) PutUser(ctx context.Context, u *models.User) error {
	query, args, err := sq.Insert("users").
		Columns(userColumns...).
		Values(u.UserID, u.Email, u.FirstName, u.LastName, u.IsInBan, u.ImageID).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET email = EXCLUDED.email, " +
			"first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, image_id = EXCLUDED.image_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	if GetPgxConstraintName(err) == UsersEmailKey {
		return ErrUserAlreadyExists
	}
	return err
}

func (s *UsersStorage) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	u := models.User{}
	err = s.db.GetContext(ctx, &u, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UsersStorage) GetUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.User, error) {
	users := make([]models.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userIDs}).
		OrderBy("email").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &users, query, args...)
	return users, err
}

func (s *UsersStorage) SetBan(ctx context.Context, userIDs []uuid.UUID, banned bool) error {
	if len(userIDs) == 0 {
		return nil
	}

	query, args, err := sq.Update("users").
		Set("is_in_ban", banned).
		Where(sq.Eq{"user_id": userIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *UsersStorage) SearchByEmail(ctx context.Context, emailPart string, banned bool, limit uint64) ([]models.User, error) {
	builder := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"is_in_ban": banned}).
		Where(sq.ILike{"email": containsPattern(emailPart)}).
		OrderBy("email").
		PlaceholderFormat(sq.Dollar)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0)
	err = s.db.SelectContext(ctx, &users, query, args...)
	return users, err
}
