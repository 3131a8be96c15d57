package users

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, username, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
