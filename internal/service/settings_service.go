package service

import (
	"context"
	"errors"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"gorm.io/gorm"
)

type SettingsService interface {
	Upsert(ctx context.Context, key string, req dto.UpsertSettingRequest) (*dto.SettingResponse, error)
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	List(ctx context.Context) ([]dto.SettingResponse, error)
	Delete(ctx context.Context, key string) error
}

type settingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Upsert(ctx context.Context, key string, req dto.UpsertSettingRequest) (*dto.SettingResponse, error) {
	setting := &model.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapSetting(setting)
	return &resp, nil
}

func (s *settingsService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("setting not found")
		}
		return nil, apierror.Internal(err)
	}
	resp := mapSetting(setting)
	return &resp, nil
}

func (s *settingsService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.SettingResponse, len(settings))
	for i := range settings {
		resp[i] = mapSetting(&settings[i])
	}
	return resp, nil
}

func (s *settingsService) Delete(ctx context.Context, key string) error {
	if _, err := s.repo.FindByKey(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("setting not found")
		}
		return apierror.Internal(err)
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func mapSetting(s *model.Setting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
	}
}
