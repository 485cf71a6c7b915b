package repository

import (
	"context"
	"time"

	"gamehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginSessionRepository interface {
	Create(ctx context.Context, s *model.LoginSession) error
	FindByToken(ctx context.Context, token string) (*model.LoginSession, error)
	Deactivate(ctx context.Context, token string) error
	DeactivateAllForOperator(ctx context.Context, operatorID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type loginSessionRepo struct{ db *gorm.DB }

func NewLoginSessionRepository(db *gorm.DB) LoginSessionRepository {
	return &loginSessionRepo{db: db}
}

func (r *loginSessionRepo) Create(ctx context.Context, s *model.LoginSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *loginSessionRepo) FindByToken(ctx context.Context, token string) (*model.LoginSession, error) {
	var s model.LoginSession
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error
	return &s, err
}

func (r *loginSessionRepo) Deactivate(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.LoginSession{}).
		Where("token = ?", token).
		Update("active", false).Error
}

func (r *loginSessionRepo) DeactivateAllForOperator(ctx context.Context, operatorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.LoginSession{}).
		Where("operator_id = ?", operatorID).
		Update("active", false).Error
}

// DeleteExpired removes sessions that are expired or already revoked.
// Postgres has no TTL eviction, so the cleanup cron calls this hourly.
func (r *loginSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR active = false", now).
		Delete(&model.LoginSession{})
	return res.RowsAffected, res.Error
}
