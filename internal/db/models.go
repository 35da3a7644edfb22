package db

import (
	"time"

	"gorm.io/datatypes"
)

// User is a clock-display account as stored in Postgres. JSON field
// names match the wire format the display clients already consume
// (capitalized, SELECT-star style).
type User struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	Username string `gorm:"uniqueIndex;size:64;not null" json:"Username"`

	// Email exists in the historical schema but is never written by
	// the current registration flow.
	Email string `gorm:"size:128" json:"Email"`

	// PasswordHash is the salted bcrypt hash of the password.
	PasswordHash string `gorm:"size:255;not null" json:"Password"`

	// Salt is the bcrypt salt prefix of PasswordHash, stored in the
	// clear alongside it. The salt is not secret.
	Salt string `gorm:"size:64" json:"Salt"`

	// Token is kept for schema compatibility; bearer tokens are
	// ephemeral and never persisted. Populated in login responses only.
	Token string `gorm:"size:512" json:"Token"`

	DateLoggedIn *time.Time `json:"DateLoggedIn"`
	DateCreated  time.Time  `json:"DateCreated"`

	// Settings is the raw per-user display configuration document,
	// stored exactly as submitted. Empty object at creation.
	Settings datatypes.JSON `gorm:"type:json" json:"Settings"`
}
