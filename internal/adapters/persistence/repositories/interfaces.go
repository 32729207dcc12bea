package repositories

import (
	"context"
	"errors"
	"time"

	"rentwise-portal/internal/adapters/persistence/models"
)

// ErrNotFound is returned when a lookup matches no live row
var ErrNotFound = errors.New("record not found")

// SessionRepository stores portal sessions
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetActive(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	SetRole(ctx context.Context, id string, roleID int) error
	Revoke(ctx context.Context, id string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	CountActiveByUserID(ctx context.Context, userID string) (int64, error)
}

// PendingRoleRepository stores role selections made before sign-up
type PendingRoleRepository interface {
	Put(ctx context.Context, pending *models.PendingRole) error
	// Take returns the live selection for state and removes it
	Take(ctx context.Context, state string) (*models.PendingRole, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
