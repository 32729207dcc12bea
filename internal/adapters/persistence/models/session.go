package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a signed-in portal session. The upstream access token never leaves the server.
type Session struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserID        string     `gorm:"index;size:64;not null" json:"user_id"`
	Email         string     `gorm:"size:255" json:"email"`
	UpstreamToken string     `gorm:"type:text;not null" json:"-"`
	RoleID        *int       `json:"role_id"`
	ExpiresAt     time.Time  `gorm:"index;not null" json:"expires_at"`
	LastSeenAt    *time.Time `json:"last_seen_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt     *time.Time `gorm:"index" json:"revoked_at"`
}

func (Session) TableName() string {
	return "portal_sessions"
}

// PendingRole is the role a visitor picked before being sent to the identity provider,
// keyed by the sign-up state parameter.
type PendingRole struct {
	State     string    `gorm:"primaryKey;size:128" json:"state"`
	RoleID    int       `gorm:"not null" json:"role_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PendingRole) TableName() string {
	return "pending_roles"
}

// AutoMigrate creates or updates the portal tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Session{}, &PendingRole{})
}
