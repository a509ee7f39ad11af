package storage

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

var (
	ErrInvitationAlreadyExists  = errors.New("user is already invited to the group")
	ErrApplicationAlreadyExists = errors.New("user has already applied to the group")
)

const (
	InvitationsPrimaryKey              = "invitations_pkey"
	InvitationsGroupIdForeignKey       = "invitations_group_id_fkey"
	InvitationsInvitedUserIdForeignKey = "invitations_invited_user_id_fkey"
	InvitationsInviterIdForeignKey     = "invitations_inviter_id_fkey"
	ApplicationsPrimaryKey             = "applications_pkey"
	ApplicationsGroupIdForeignKey      = "applications_group_id_fkey"
	ApplicationsUserIdForeignKey       = "applications_user_id_fkey"
)

type InvitationsStorage struct {
	db Scope
}

func NewInvitationsStorage(db Scope) *InvitationsStorage {
	return &InvitationsStorage{
		db: db,
	}
}

func (s *InvitationsStorage) AddInvitations(ctx context.Context, invitations []models.Invitation) error {
	if len(invitations) == 0 {
		return nil
	}

	builder := sq.Insert("invitations").
		Columns("group_id", "invited_user_id", "inviter_id", "value", "send_date").
		PlaceholderFormat(sq.Dollar)

	for _, inv := range invitations {
		builder = builder.Values(inv.GroupID, inv.InvitedUserID, inv.InviterID, inv.Value, inv.SendDate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case InvitationsPrimaryKey:
		return ErrInvitationAlreadyExists
	case InvitationsGroupIdForeignKey:
		return ErrGroupNotFound
	case InvitationsInvitedUserIdForeignKey, InvitationsInviterIdForeignKey:
		return ErrUserNotFound
	default:
		return err
	}
}

func (s *InvitationsStorage) GetGroupInvitations(ctx context.Context, groupID uuid.UUID) ([]models.Invitation, error) {
	query, args, err := sq.Select("group_id", "invited_user_id", "inviter_id", "value", "send_date").
		From("invitations").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("send_date", "invited_user_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	invitations := make([]models.Invitation, 0)
	err = s.db.SelectContext(ctx, &invitations, query, args...)
	return invitations, err
}

type ApplicationsStorage struct {
	db Scope
}

func NewApplicationsStorage(db Scope) *ApplicationsStorage {
	return &ApplicationsStorage{
		db: db,
	}
}

func (s *ApplicationsStorage) AddApplication(ctx context.Context, a *models.Application) error {
	query, args, err := sq.Insert("applications").
		Columns("group_id", "user_id", "value", "send_date").
		Values(a.GroupID, a.UserID, a.Value, a.SendDate).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case ApplicationsPrimaryKey:
		return ErrApplicationAlreadyExists
	case ApplicationsGroupIdForeignKey:
		return ErrGroupNotFound
	case ApplicationsUserIdForeignKey:
		return ErrUserNotFound
	default:
		return err
	}
}

func (s *ApplicationsStorage) GetGroupApplications(ctx context.Context, groupID uuid.UUID) ([]models.Application, error) {
	query, args, err := sq.Select("group_id", "user_id", "value", "send_date").
		From("applications").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("send_date", "user_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	applications := make([]models.Application, 0)
	err = s.db.SelectContext(ctx, &applications, query, args...)
	return applications, err
}
