package repository

import (
	"context"

	"gamehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(ctx context.Context, s *model.CatalogService) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogService, error)
	List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]model.CatalogService, error)
	Update(ctx context.Context, s *model.CatalogService) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) Create(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogService, error) {
	var s model.CatalogService
	err := r.db.WithContext(ctx).Preload("Category").First(&s, id).Error
	return &s, err
}

func (r *catalogRepo) List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]model.CatalogService, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if !includeInactive {
		q = q.Where("active = true")
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var services []model.CatalogService
	err := q.Order("name").Find(&services).Error
	return services, err
}

func (r *catalogRepo) Update(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CatalogService{}).Where("id = ?", id).Update("active", false).Error
}

func (r *catalogRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CatalogService{}).Where("id = ?", id).Update("active", true).Error
}
