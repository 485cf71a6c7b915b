package service

import (
	"context"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/repository"
)

// BackupService exports the whole dataset as one JSON document. Operator
// password hashes are stripped by the repository before they leave the
// database layer.
type BackupService interface {
	Export(ctx context.Context) (map[string]any, error)
}

type backupService struct {
	repo repository.BackupRepository
}

func NewBackupService(repo repository.BackupRepository) BackupService {
	return &backupService{repo: repo}
}

func (s *backupService) Export(ctx context.Context) (map[string]any, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	snapshot["exported_at"] = time.Now().UTC().Format(time.RFC3339)
	return snapshot, nil
}
