package repository

import (
	"context"

	"gamehouse/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, e *model.ActivityLogEntry) error
	List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLogEntry, int64, error)
}

// ActivityLogFilter narrows the audit listing; zero values mean "all".
type ActivityLogFilter struct {
	Resource string
	Status   string
	Page     int
	Limit    int
}

type activityLogRepo struct{ db *gorm.DB }

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, e *model.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *activityLogRepo) List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLogEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivityLogEntry{})
	if filter.Resource != "" {
		q = q.Where("resource = ?", filter.Resource)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.ActivityLogEntry
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&entries).Error
	return entries, total, err
}
