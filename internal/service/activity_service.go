package service

import (
	"context"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ActivityService interface {
	// Record is best-effort: a failed audit write is logged and swallowed so
	// it never fails the originating request.
	Record(ctx context.Context, operatorID *uuid.UUID, action, resource, details, status string)
	List(ctx context.Context, filter repository.ActivityLogFilter) (*dto.ActivityLogListResponse, error)
}

type activityService struct {
	repo repository.ActivityLogRepository
}

func NewActivityService(repo repository.ActivityLogRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, operatorID *uuid.UUID, action, resource, details, status string) {
	entry := &model.ActivityLogEntry{
		OperatorID: operatorID,
		Action:     action,
		Resource:   resource,
		Details:    details,
		Status:     status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("resource", resource).
			Msg("activity: failed to write audit entry")
	}
}

func (s *activityService) List(ctx context.Context, filter repository.ActivityLogFilter) (*dto.ActivityLogListResponse, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := &dto.ActivityLogListResponse{
		Data:  make([]dto.ActivityLogResponse, 0, len(entries)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range entries {
		e := &entries[i]
		item := dto.ActivityLogResponse{
			ID:        e.ID.String(),
			Action:    e.Action,
			Resource:  e.Resource,
			Details:   e.Details,
			Status:    e.Status,
			Timestamp: e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.OperatorID != nil {
			id := e.OperatorID.String()
			item.OperatorID = &id
		}
		resp.Data = append(resp.Data, item)
	}
	return resp, nil
}
