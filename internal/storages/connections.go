package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

var ErrConnectionNotFound = errors.New("connection with provided connection_id does not exist")

const ConnectionsUserIdForeignKey = "connections_user_id_fkey"

type ConnectionsStorage struct {
	db Scope
}

func NewConnectionsStorage(db Scope) *ConnectionsStorage {
	return &ConnectionsStorage{
		db: db,
	}
}

// PutConnection inserts the connection or revives an existing row with the
// same id.
func (s *ConnectionsStorage) PutConnection(ctx context.Context, c *models.Connection) error {
	query, args, err := sq.Insert("connections").
		Columns("connection_id", "user_id", "user_agent", "is_connected").
		Values(c.ConnectionID, c.UserID, c.UserAgent, c.IsConnected).
		Suffix("ON CONFLICT (connection_id) DO UPDATE SET user_id = EXCLUDED.user_id, " +
			"user_agent = EXCLUDED.user_agent, is_connected = EXCLUDED.is_connected").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	if GetPgxConstraintName(err) == ConnectionsUserIdForeignKey {
		return ErrUserNotFound
	}
	return err
}

func (s *ConnectionsStorage) SetConnected(ctx context.Context, connectionID string, connected bool) (*models.Connection, error) {
	query, args, err := sq.Update("connections").
		Set("is_connected", connected).
		Where(sq.Eq{"connection_id": connectionID}).
		Suffix("RETURNING connection_id, user_id, user_agent, is_connected").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	c := models.Connection{}
	err = s.db.GetContext(ctx, &c, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConnectionNotFound
	} else if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetUserConnections returns the live connections of the user.
func (s *ConnectionsStorage) GetUserConnections(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	query, args, err := sq.Select("connection_id", "user_id", "user_agent", "is_connected").
		From("connections").
		Where(sq.Eq{
			"user_id":      userID,
			"is_connected": true,
		}).
		OrderBy("connection_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	connections := make([]models.Connection, 0)
	err = s.db.SelectContext(ctx, &connections, query, args...)
	return connections, err
}

// GetGroupConnections returns the live connections of every active member of
// the group.
func (s *ConnectionsStorage) GetGroupConnections(ctx context.Context, groupID uuid.UUID) ([]models.Connection, error) {
	query, args, err := sq.Select("c.connection_id", "c.user_id", "c.user_agent", "c.is_connected").
		From("connections c").
		Join("user_groups ug USING(user_id)").
		Where(sq.Eq{
			"ug.group_id":    groupID,
			"ug.is_leaved":   false,
			"c.is_connected": true,
		}).
		OrderBy("c.connection_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	connections := make([]models.Connection, 0)
	err = s.db.SelectContext(ctx, &connections, query, args...)
	return connections, err
}
