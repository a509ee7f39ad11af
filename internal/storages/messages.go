package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

var (
	ErrMessageAlreadyExists = errors.New("message with provided message_id already exists")
	ErrMessageNotFound      = errors.New("message does not exist")
)

const (
	MessagesPrimaryKey        = "messages_pkey"
	MessagesGroupIdForeignKey = "messages_group_id_fkey"
	MessagesUserIdForeignKey  = "messages_user_id_fkey"
)

var messageColumns = []string{
	"message_id", "group_id", "user_id", "value", "old_value", "send_date", "edit_date",
}

type MessagesStorage struct {
	db Scope
}

func NewMessagesStorage(db Scope) *MessagesStorage {
	return &MessagesStorage{
		db: db,
	}
}

func (s *MessagesStorage) PutMessage(ctx context.Context, message *models.Message) error {
	query, args, err := sq.Insert("messages").
		Columns(messageColumns...).
		Values(
			message.MessageID,
			message.GroupID,
			message.UserID,
			message.Value,
			message.OldValue,
			message.SendDate,
			message.EditDate,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case MessagesPrimaryKey:
		return ErrMessageAlreadyExists
	case MessagesGroupIdForeignKey:
		return ErrGroupNotFound
	case MessagesUserIdForeignKey:
		return ErrUserNotFound
	default:
		return err
	}
}

func (s *MessagesStorage) GetMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error) {
	query, args, err := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"message_id": messageID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	msg := models.Message{}
	err = s.db.GetContext(ctx, &msg, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	} else if err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessage overwrites value, old_value and edit_date of an existing message.
func (s *MessagesStorage) EditMessage(ctx context.Context, message *models.Message) error {
	query, args, err := sq.Update("messages").
		Set("value", message.Value).
		Set("old_value", message.OldValue).
		Set("edit_date", message.EditDate).
		Where(sq.Eq{"message_id": message.MessageID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	count, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}

type SelectOptions struct {
	Limit   uint64
	OrderBy []string
}

func (s *MessagesStorage) SelectMessages(ctx context.Context, selector sq.Sqlizer, options ...SelectOptions) ([]models.Message, error) {
	option := SelectOptions{}
	if len(options) > 0 {
		option = options[0]
	}

	builder := sq.Select(messageColumns...).
		From("messages").
		Where(selector).
		PlaceholderFormat(sq.Dollar)

	if len(option.OrderBy) > 0 {
		builder = builder.OrderBy(option.OrderBy...)
	}

	if option.Limit > 0 {
		builder = builder.Limit(option.Limit)
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)

	for rows.Next() {
		msg := models.Message{}

		if err = rows.StructScan(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// GetLatestMessages returns at most count newest messages of the group in
// chronological order.
func (s *MessagesStorage) GetLatestMessages(ctx context.Context, groupID uuid.UUID, count uint64) ([]models.Message, error) {
	messages, err := s.SelectMessages(ctx, sq.Eq{"group_id": groupID}, SelectOptions{
		Limit:   count,
		OrderBy: []string{"send_date DESC", "message_id"},
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *MessagesStorage) GetMessagesSince(ctx context.Context, groupID uuid.UUID, since time.Time, count uint64) ([]models.Message, error) {
	selector := sq.And{
		sq.Eq{"group_id": groupID},
		sq.GtOrEq{"send_date": since.UTC()},
	}
	return s.SelectMessages(ctx, selector, SelectOptions{
		Limit:   count,
		OrderBy: []string{"send_date"},
	})
}
