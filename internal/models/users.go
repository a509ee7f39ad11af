package models

import "github.com/google/uuid"

type User struct {
	UserID    uuid.UUID  `db:"user_id"`
	Email     string     `db:"email"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	IsInBan   bool       `db:"is_in_ban"`
	ImageID   *uuid.UUID `db:"image_id"`
}

type Connection struct {
	ConnectionID string    `db:"connection_id"`
	UserID       uuid.UUID `db:"user_id"`
	UserAgent    string    `db:"user_agent"`
	IsConnected  bool      `db:"is_connected"`
}

type BanModification struct {
	BanIDs   []uuid.UUID `json:"BanIds"`
	UnbanIDs []uuid.UUID `json:"UnbanIds"`
}

type UserBanModel struct {
	BannedUsers   []SimpleUserModel `json:"BannedUsers"`
	NoBannedUsers []SimpleUserModel `json:"NoBannedUsers"`
}
