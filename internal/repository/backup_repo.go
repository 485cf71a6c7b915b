package repository

import (
	"context"

	"gamehouse/internal/model"

	"gorm.io/gorm"
)

// BackupRepository exports a read-only snapshot of every collection for the
// administrative backup endpoint. Password hashes and credential tokens are
// deliberately excluded from the export.
type BackupRepository interface {
	Snapshot(ctx context.Context) (map[string]any, error)
}

type backupRepo struct{ db *gorm.DB }

func NewBackupRepository(db *gorm.DB) BackupRepository { return &backupRepo{db: db} }

func (r *backupRepo) Snapshot(ctx context.Context) (map[string]any, error) {
	db := r.db.WithContext(ctx)

	var operators []model.Operator
	if err := db.Omit("password_hash").Find(&operators).Error; err != nil {
		return nil, err
	}
	for i := range operators {
		operators[i].PasswordHash = ""
	}

	var customers []model.Customer
	if err := db.Find(&customers).Error; err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}

	var services []model.CatalogService
	if err := db.Find(&services).Error; err != nil {
		return nil, err
	}

	var sessions []model.Session
	if err := db.Preload("Items").Find(&sessions).Error; err != nil {
		return nil, err
	}

	var settings []model.Setting
	if err := db.Find(&settings).Error; err != nil {
		return nil, err
	}

	var activity []model.ActivityLogEntry
	if err := db.Find(&activity).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"operators":    operators,
		"customers":    customers,
		"categories":   categories,
		"services":     services,
		"sessions":     sessions,
		"settings":     settings,
		"activity_log": activity,
	}, nil
}
