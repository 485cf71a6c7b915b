package repository

import (
	"context"
	"time"

	"gamehouse/internal/model"

	"gorm.io/gorm"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, t *model.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, t *model.PasswordResetToken) error
	InvalidateForEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type resetTokenRepo struct{ db *gorm.DB }

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepo{db: db}
}

func (r *resetTokenRepo) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *resetTokenRepo) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	return &t, err
}

func (r *resetTokenRepo) MarkUsed(ctx context.Context, t *model.PasswordResetToken) error {
	t.Used = true
	return r.db.WithContext(ctx).Save(t).Error
}

// InvalidateForEmail marks every outstanding token for the email as used, so
// only the most recently issued token can redeem.
func (r *resetTokenRepo) InvalidateForEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Where("LOWER(email) = LOWER(?) AND used = false", email).
		Update("used", true).Error
}

func (r *resetTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR used = true", now).
		Delete(&model.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
