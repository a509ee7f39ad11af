package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

var (
	ErrGroupAlreadyExists      = errors.New("group with provided group_id already exists")
	ErrGroupNotFound           = errors.New("group with provided group_id does not exist")
	ErrGroupNameTaken          = errors.New("public group with provided name already exists")
	ErrGroupInvalid            = errors.New("group violates name or type constraints")
	ErrChatAlreadyExists       = errors.New("chat between provided users already exists")
	ErrMembershipAlreadyExists = errors.New("user is already a group member")
	ErrMembershipNotFound      = errors.New("user is not a group member")
	ErrUserNotFound            = errors.New("user with provided user_id does not exist")
)

const (
	GroupsPrimaryKey            = "groups_pkey"
	GroupsPublicNameKey         = "groups_public_name_key"
	GroupsNameCheck             = "groups_name_check"
	GroupsTypeCheck             = "groups_type_check"
	ChatPairsUsersKey           = "chat_pairs_users_key"
	ChatPairsPrimaryKey         = "chat_pairs_pkey"
	UserGroupsPrimaryKey        = "user_groups_pkey"
	UserGroupsUserIdForeignKey  = "user_groups_user_id_fkey"
	UserGroupsGroupIdForeignKey = "user_groups_group_id_fkey"
)

type GroupsStorage struct {
	db Scope
}

func NewGroupsStorage(db Scope) *GroupsStorage {
	return &GroupsStorage{
		db: db,
	}
}

func (s *GroupsStorage) CreateGroup(ctx context.Context, group *models.Group) error {
	query, args, err := sq.Insert("groups").
		Columns("group_id", "name", "type", "creation_date", "image_id").
		Values(group.GroupID, group.Name, string(group.Type), group.CreationDate, group.ImageID).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case GroupsPrimaryKey:
		return ErrGroupAlreadyExists
	case GroupsPublicNameKey:
		return ErrGroupNameTaken
	case GroupsNameCheck, GroupsTypeCheck:
		return ErrGroupInvalid
	default:
		return err
	}
}

func (s *GroupsStorage) GetGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	query, args, err := sq.Select("group_id", "name", "type", "creation_date", "image_id").
		From("groups").
		Where(sq.Eq{"group_id": groupID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	group := models.Group{}
	err = s.db.GetContext(ctx, &group, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	} else if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes the group. Memberships, invitations, applications,
// messages and the chat pair go with it through ON DELETE CASCADE.
func (s *GroupsStorage) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	query, args, err := sq.Delete("groups").
		Where(sq.Eq{"group_id": groupID}).
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
		return ErrGroupNotFound
	}
	return nil
}

func (s *GroupsStorage) PublicNameExists(ctx context.Context, name string) (bool, error) {
	query, args, err := sq.Select("count(1)").
		From("groups").
		Where(sq.Eq{
			"type": string(models.GroupTypePublic),
			"name": name,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return false, err
	}

	count := 0
	err = s.db.GetContext(ctx, &count, query, args...)
	return count > 0, err
}

// SearchPublicGroups returns public groups whose name contains namePart and
// where userID holds no active membership.
func (s *GroupsStorage) SearchPublicGroups(ctx context.Context, userID uuid.UUID, namePart string, limit uint64) ([]models.Group, error) {
	builder := sq.Select("g.group_id", "g.name", "g.type", "g.creation_date", "g.image_id").
		From("groups g").
		Where(sq.Eq{"g.type": string(models.GroupTypePublic)}).
		Where(sq.ILike{"g.name": containsPattern(namePart)}).
		Where(sq.Expr(`NOT EXISTS (
			SELECT 1 FROM user_groups ug
			WHERE ug.group_id = g.group_id AND ug.user_id = ? AND NOT ug.is_leaved
		)`, userID)).
		OrderBy("g.name").
		PlaceholderFormat(sq.Dollar)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0)
	err = s.db.SelectContext(ctx, &groups, query, args...)
	return groups, err
}

// CreateChatPair records the unordered pair of a direct chat. At most one chat
// may exist per pair.
func (s *GroupsStorage) CreateChatPair(ctx context.Context, groupID, first, second uuid.UUID) error {
	first, second = orderPair(first, second)
	query, args, err := sq.Insert("chat_pairs").
		Columns("group_id", "first_user_id", "second_user_id").
		Values(groupID, first, second).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case ChatPairsUsersKey, ChatPairsPrimaryKey:
		return ErrChatAlreadyExists
	default:
		return err
	}
}

func (s *GroupsStorage) ChatPairExists(ctx context.Context, first, second uuid.UUID) (bool, error) {
	first, second = orderPair(first, second)
	query, args, err := sq.Select("count(1)").
		From("chat_pairs").
		Where(sq.Eq{
			"first_user_id":  first,
			"second_user_id": second,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return false, err
	}

	count := 0
	err = s.db.GetContext(ctx, &count, query, args...)
	return count > 0, err
}

func (s *GroupsStorage) AddMembership(ctx context.Context, m *models.Membership) error {
	query, args, err := sq.Insert("user_groups").
		Columns("user_id", "group_id", "is_creator", "is_leaved", "add_date").
		Values(m.UserID, m.GroupID, m.IsCreator, m.IsLeaved, m.AddDate).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)

	switch GetPgxConstraintName(err) {
	case UserGroupsPrimaryKey:
		return ErrMembershipAlreadyExists
	case UserGroupsGroupIdForeignKey:
		return ErrGroupNotFound
	case UserGroupsUserIdForeignKey:
		return ErrUserNotFound
	default:
		return err
	}
}

func (s *GroupsStorage) GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*models.Membership, error) {
	query, args, err := sq.Select("user_id", "group_id", "is_creator", "is_leaved", "add_date").
		From("user_groups").
		Where(sq.Eq{
			"group_id": groupID,
			"user_id":  userID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	m := models.Membership{}
	err = s.db.GetContext(ctx, &m, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMembershipNotFound
	} else if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GroupsStorage) SetLeaved(ctx context.Context, groupID, userID uuid.UUID, leaved bool) error {
	query, args, err := sq.Update("user_groups").
		Set("is_leaved", leaved).
		Where(sq.Eq{
			"group_id": groupID,
			"user_id":  userID,
		}).
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
		return ErrMembershipNotFound
	}
	return nil
}

func (s *GroupsStorage) GetGroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error) {
	query, args, err := sq.Select(
		"ug.user_id", "ug.group_id", "ug.is_creator", "ug.is_leaved", "ug.add_date",
		"u.email", "u.image_id",
	).
		From("user_groups ug").
		Join("users u USING(user_id)").
		Where(sq.Eq{"ug.group_id": groupID}).
		OrderBy("ug.add_date", "ug.user_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	members := make([]models.GroupMember, 0)
	err = s.db.SelectContext(ctx, &members, query, args...)
	return members, err
}

func (s *GroupsStorage) GetActiveGroupIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := sq.Select("group_id").
		From("user_groups").
		Where(sq.Eq{
			"user_id":   userID,
			"is_leaved": false,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0)
	err = s.db.SelectContext(ctx, &ids, query, args...)
	return ids, err
}

func orderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return a, b
			}
			return b, a
		}
	}
	return a, b
}
