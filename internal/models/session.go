package models

import (
	"time"
)

// Session represents a server-side login session. The token the client
// echoes back is only honored while the matching row is not revoked, so
// logout invalidates it regardless of the token's own lifetime.
//
// ExpiresAt is derived from the user's configured session duration at login
// time. It is stored but not checked during resolution.
type Session struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	// Define the relationship to User
	User User `gorm:"foreignKey:UserID" json:"-"`
}
