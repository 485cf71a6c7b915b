package repository

import (
	"context"

	"gamehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Session, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Session, int64, error)
	Update(ctx context.Context, s *model.Session) error
	AddItem(ctx context.Context, item *model.SessionItem) error
	UpdateItem(ctx context.Context, item *model.SessionItem) error
	RemoveItem(ctx context.Context, id uuid.UUID) error
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Customer").
		First(&s, id).Error
	return &s, err
}

func (r *sessionRepo) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status <> ?", customerID, model.SessionCompleted).
		First(&s).Error
	return &s, err
}

func (r *sessionRepo) List(ctx context.Context, status string, page, limit int) ([]model.Session, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Session{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.Session
	err := q.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("started_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

// Update persists the session's own columns only; items are written through
// AddItem/UpdateItem so cost recomputation never double-saves the graph.
func (r *sessionRepo) Update(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *sessionRepo) AddItem(ctx context.Context, item *model.SessionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *sessionRepo) UpdateItem(ctx context.Context, item *model.SessionItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *sessionRepo) RemoveItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SessionItem{}, id).Error
}
