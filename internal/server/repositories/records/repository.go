package records

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Record, error)
	Delete(ctx context.Context, userID, recordID int64) error
}
