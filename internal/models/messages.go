package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	MessageID uuid.UUID  `db:"message_id"`
	GroupID   uuid.UUID  `db:"group_id"`
	UserID    uuid.UUID  `db:"user_id"`
	Value     string     `db:"value"`
	OldValue  *string    `db:"old_value"`
	SendDate  time.Time  `db:"send_date"`
	EditDate  *time.Time `db:"edit_date"`
}

type MessageSend struct {
	GroupID uuid.UUID `json:"GroupId" validate:"required"`
	Value   string    `json:"Value" validate:"required,max=4000"`
}

type MessageEdit struct {
	MessageID uuid.UUID `json:"MessageId" validate:"required"`
	Value     string    `json:"Value" validate:"required,max=4000"`
}
