package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentwise-portal/internal/adapters/persistence/models"
)

type pendingRoleRepository struct {
	db *gorm.DB
}

func NewPendingRoleRepository(db *gorm.DB) PendingRoleRepository {
	return &pendingRoleRepository{db: db}
}

// Put stores the selection, replacing an earlier one for the same state
func (r *pendingRoleRepository) Put(ctx context.Context, pending *models.PendingRole) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "state"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id", "expires_at"}),
		}).
		Create(pending).Error
}

func (r *pendingRoleRepository) Take(ctx context.Context, state string) (*models.PendingRole, error) {
	var pending models.PendingRole
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("state = ?", state).First(&pending).Error; err != nil {
			return err
		}
		return tx.Where("state = ?", state).Delete(&models.PendingRole{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// an expired selection is consumed but not honoured
	if time.Now().After(pending.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &pending, nil
}

func (r *pendingRoleRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.PendingRole{})
	return res.RowsAffected, res.Error
}
