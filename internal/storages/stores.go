package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

type GroupsStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	PublicNameExists(ctx context.Context, name string) (bool, error)
	SearchPublicGroups(ctx context.Context, userID uuid.UUID, namePart string, limit uint64) ([]models.Group, error)

	CreateChatPair(ctx context.Context, groupID, first, second uuid.UUID) error
	ChatPairExists(ctx context.Context, first, second uuid.UUID) (bool, error)

	AddMembership(ctx context.Context, m *models.Membership) error
	GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*models.Membership, error)
	SetLeaved(ctx context.Context, groupID, userID uuid.UUID, leaved bool) error
	GetGroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error)
	GetActiveGroupIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type InvitationsStore interface {
	AddInvitations(ctx context.Context, invitations []models.Invitation) error
	GetGroupInvitations(ctx context.Context, groupID uuid.UUID) ([]models.Invitation, error)
}

type ApplicationsStore interface {
	AddApplication(ctx context.Context, application *models.Application) error
	GetGroupApplications(ctx context.Context, groupID uuid.UUID) ([]models.Application, error)
}

type MessagesStore interface {
	PutMessage(ctx context.Context, message *models.Message) error
	GetMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error)
	EditMessage(ctx context.Context, message *models.Message) error
	SelectMessages(ctx context.Context, selector sq.Sqlizer, options ...SelectOptions) ([]models.Message, error)
	GetLatestMessages(ctx context.Context, groupID uuid.UUID, count uint64) ([]models.Message, error)
}

type ConnectionsStore interface {
	PutConnection(ctx context.Context, c *models.Connection) error
	SetConnected(ctx context.Context, connectionID string, connected bool) (*models.Connection, error)
	GetUserConnections(ctx context.Context, userID uuid.UUID) ([]models.Connection, error)
	GetGroupConnections(ctx context.Context, groupID uuid.UUID) ([]models.Connection, error)
}

type UsersStore interface {
	PutUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.User, error)
	SetBan(ctx context.Context, userIDs []uuid.UUID, banned bool) error
	SearchByEmail(ctx context.Context, emailPart string, banned bool, limit uint64) ([]models.User, error)
}

type UpdatesStore interface {
	GroupCreated(update *models.GroupCreated) error
	MemberLeft(update *models.MemberLeft) error
	GroupRemoved(update *models.GroupRemoved) error
	MessageSent(update *models.MessageSent) error
}
