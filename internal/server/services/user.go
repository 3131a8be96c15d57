// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, stateless token
// verification, and profile/password updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/server/auth"
	"github.com/dmitrijs2005/timekeeper/internal/server/config"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create a user and issue a token
// - Login: verify credentials and issue a token
// - VerifyToken: resolve a token back to its user
// - ChangePassword / UpdateProfile: authenticated self-service updates
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a derived password hash and issues a
// signed token. The raw password is never stored.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login verifies the username/password pair and issues a token. Unknown
// users and wrong passwords produce the same error so usernames cannot be
// enumerated.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrInternal
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// VerifyToken checks the token's signature and expiry and resolves the user
// it was signed for. A token for a user that no longer exists is invalid.
func (s *UserService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// ChangePassword verifies the old password against the current hash and
// stores a hash of the new one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", common.ErrValidation)
	}

	ok, err := auth.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil || !ok {
		return common.ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdatePassword(ctx, user.ID, hash)
	}); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// UpdateProfile changes the user's username and/or email. Empty arguments
// keep the current values.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, username, email string) (*models.User, error) {
	if username == "" {
		username = user.Username
	}
	if email == "" {
		email = user.Email
	}

	var updated *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		updated, txErr = s.repomanager.Users(tx).UpdateProfile(ctx, user.ID, username, email)
		return txErr
	}); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return updated, nil
}

func (s *UserService) generateToken(userID int64) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
