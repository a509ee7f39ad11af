package models

import (
	"time"

	"github.com/google/uuid"
)

// Updates are domain events published to other services after commit.

type UpdateMeta struct {
	Timestamp time.Time
	Audience  []string
}

type GroupCreated struct {
	UpdateMeta
	GroupID   uuid.UUID
	Type      GroupType
	CreatorID uuid.UUID
	Invited   []uuid.UUID
}

type MemberLeft struct {
	UpdateMeta
	GroupID uuid.UUID
	UserID  uuid.UUID
}

type GroupRemoved struct {
	UpdateMeta
	GroupID   uuid.UUID
	RemovedBy uuid.UUID
}

type MessageSent struct {
	UpdateMeta
	MessageID uuid.UUID
	GroupID   uuid.UUID
	FromUser  uuid.UUID
	Text      string
}
