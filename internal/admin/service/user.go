package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/cryptox"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// UserService exposes account reads and first-boot seeding.
type UserService struct {
	Store store.Store
}

// GetProfile returns the account for an authenticated principal.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// EnsureAdmin seeds the first admin account when the user table is empty.
// On any later boot this is a no-op, so a changed seed password in the
// environment never silently rewrites an existing account.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check user table: %w", err)
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	slogx.FromContext(ctx).Info("seeded initial admin account",
		slog.Int64("user_id", id), slog.String("email", email))
	return nil
}
