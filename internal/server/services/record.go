package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
)

// RecordService manages a user's timed sessions. Records are created and
// deleted, never updated.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

// parseTimestamp accepts RFC 3339 ("2024-01-01T10:00:00Z") and the same
// layout without a zone designator, interpreted as UTC.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC)
}

// Create parses the client-supplied session boundaries and persists a record
// owned by userID. The duration is stored as reported by the client.
func (s *RecordService) Create(ctx context.Context, userID int64, startTime, endTime string, duration *int64) (*models.Record, error) {
	if duration == nil {
		return nil, fmt.Errorf("%w: duration is required", common.ErrValidation)
	}
	if *duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", common.ErrValidation)
	}

	start, err := parseTimestamp(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime", common.ErrValidation)
	}
	end, err := parseTimestamp(endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime", common.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endTime must not be before startTime", common.ErrValidation)
	}

	repo := s.repomanager.Records(s.db)
	record, err := repo.Create(ctx, &models.Record{
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Duration:  *duration,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}

	return record, nil
}

// List returns all of the user's records, most recent start first. Each call
// runs a fresh query.
func (s *RecordService) List(ctx context.Context, userID int64) ([]*models.Record, error) {
	records, err := s.repomanager.Records(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return records, nil
}

// Delete removes one of the user's records. Deleting a record that does not
// exist, or that belongs to another user, returns common.ErrorNotFound.
func (s *RecordService) Delete(ctx context.Context, userID, recordID int64) error {
	return s.repomanager.Records(s.db).Delete(ctx, userID, recordID)
}
