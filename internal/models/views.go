package models

import (
	"time"

	"github.com/google/uuid"
)

// View models are the client facing shapes. Field names are part of the wire
// contract and keep their PascalCase spelling.

type SimpleUserModel struct {
	ID      uuid.UUID  `json:"Id"`
	Email   string     `json:"Email"`
	ImageID *uuid.UUID `json:"ImageId"`
}

type GroupUserModel struct {
	ID        uuid.UUID  `json:"Id"`
	Email     string     `json:"Email"`
	ImageID   *uuid.UUID `json:"ImageId"`
	IsCreator bool       `json:"IsCreator"`
	IsLeaved  bool       `json:"IsLeaved"`
}

type MessageModel struct {
	ID       uuid.UUID       `json:"Id"`
	GroupID  uuid.UUID       `json:"GroupId"`
	Value    string          `json:"Value"`
	OldValue *string         `json:"OldValue"`
	SendDate time.Time       `json:"SendDate"`
	EditDate *time.Time      `json:"EditDate"`
	User     SimpleUserModel `json:"User"`
}

type SimpleGroupModel struct {
	ID          uuid.UUID     `json:"Id"`
	Name        *string       `json:"Name"`
	Type        GroupType     `json:"Type"`
	ImageID     *uuid.UUID    `json:"ImageId"`
	LastMessage *MessageModel `json:"LastMessage"`
}

type InvitationModel struct {
	Value       string            `json:"Value" validate:"max=500"`
	SendDate    time.Time         `json:"SendDate"`
	SimpleGroup *SimpleGroupModel `json:"SimpleGroup"`
	Inviter     SimpleUserModel   `json:"Inviter"`
	InvitedUser SimpleUserModel   `json:"InvitedUser"`
}

type ReduceInvitationModel struct {
	GroupID       uuid.UUID `json:"GroupId"`
	InvitedUserID uuid.UUID `json:"InvitedUserId"`
	InviterID     uuid.UUID `json:"InviterId"`
}

type ApplicationModel struct {
	GroupID  uuid.UUID       `json:"GroupId"`
	Value    string          `json:"Value"`
	SendDate time.Time       `json:"SendDate"`
	User     SimpleUserModel `json:"User"`
}

// GroupModel is the full group view. Invitations and Applications are nil for
// viewers that did not create the group.
type GroupModel struct {
	ID           uuid.UUID          `json:"Id"`
	Name         *string            `json:"Name"`
	Type         GroupType          `json:"Type"`
	CreationDate time.Time          `json:"CreationDate"`
	ImageID      *uuid.UUID         `json:"ImageId"`
	IsCreator    bool               `json:"IsCreator"`
	Users        []GroupUserModel   `json:"Users"`
	Messages     []MessageModel     `json:"Messages"`
	Invitations  []InvitationModel  `json:"Invitations"`
	Applications []ApplicationModel `json:"Applications"`
}
