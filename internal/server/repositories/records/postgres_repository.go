package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {

	query :=
		`INSERT INTO records (user_id, start_time, end_time, duration)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.UserID, record.StartTime, record.EndTime, record.Duration).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// ListByUser returns all of the user's records, most recent start first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Record, error) {
	query :=
		`SELECT id, user_id, start_time, end_time, duration, created_at FROM records
		 WHERE user_id = $1
		 ORDER BY start_time DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		record := &models.Record{}
		if err := rows.Scan(&record.ID, &record.UserID, &record.StartTime,
			&record.EndTime, &record.Duration, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the record only when it belongs to userID, so one user can
// never delete another user's records.
func (r *PostgresRepository) Delete(ctx context.Context, userID, recordID int64) error {
	query :=
		`DELETE FROM records
		 WHERE id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, recordID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
