// accessToken.go - Defines the AccessToken model backing bearer-token auth

package models

import "time"

// AccessToken is one issued bearer token. The signed token handed to the
// client carries TokenID; a token is valid only while its row exists, so
// deleting the row revokes that token and no other.
type AccessToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TokenID    string     `gorm:"uniqueIndex;not null" json:"token_id"` // Random UUID embedded in the signed token
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name       string     `json:"name"` // Token label, e.g. "auth-token"
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
