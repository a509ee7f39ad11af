package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type GroupType string

const (
	GroupTypePublic  GroupType = "public"
	GroupTypePrivate GroupType = "private"
	GroupTypeChat    GroupType = "chat"
)

// ParseGroupType accepts the type name in any letter case.
func ParseGroupType(raw string) (GroupType, bool) {
	switch t := GroupType(strings.ToLower(strings.TrimSpace(raw))); t {
	case GroupTypePublic, GroupTypePrivate, GroupTypeChat:
		return t, true
	default:
		return "", false
	}
}

type Group struct {
	GroupID      uuid.UUID  `db:"group_id"`
	Name         *string    `db:"name"`
	Type         GroupType  `db:"type"`
	CreationDate time.Time  `db:"creation_date"`
	ImageID      *uuid.UUID `db:"image_id"`
}

// Membership is a user_groups row. IsCreator is fixed at insert time.
type Membership struct {
	UserID    uuid.UUID `db:"user_id"`
	GroupID   uuid.UUID `db:"group_id"`
	IsCreator bool      `db:"is_creator"`
	IsLeaved  bool      `db:"is_leaved"`
	AddDate   time.Time `db:"add_date"`
}

// GroupMember is a membership joined with its user.
type GroupMember struct {
	Membership
	Email   string     `db:"email"`
	ImageID *uuid.UUID `db:"image_id"`
}

type Invitation struct {
	GroupID       uuid.UUID `db:"group_id"`
	InvitedUserID uuid.UUID `db:"invited_user_id"`
	InviterID     uuid.UUID `db:"inviter_id"`
	Value         string    `db:"value"`
	SendDate      time.Time `db:"send_date"`
}

type Application struct {
	GroupID  uuid.UUID `db:"group_id"`
	UserID   uuid.UUID `db:"user_id"`
	Value    string    `db:"value"`
	SendDate time.Time `db:"send_date"`
}

// NewGroup is the CreateGroup payload sent by clients.
type NewGroup struct {
	Name            string            `json:"Name"`
	Type            string            `json:"Type"`
	Invitations     []InvitationModel `json:"Invitations" validate:"dive"`
	HaveImage       bool              `json:"HaveImage"`
	PreviousImageID string            `json:"PreviousImageId"`
}
