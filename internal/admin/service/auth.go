package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/cryptox"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// ErrInvalidCredentials is the single failure every unsuccessful login
// collapses into. Unknown account, wrong password and disabled account are
// indistinguishable to the caller, which keeps account enumeration blind.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

// AuthService authenticates credential pairs and hands out token pairs.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Login verifies an identifier/password pair and, on success, issues a
// fresh token pair. The identifier may be an email address or a decimal
// user id; it is resolved to the canonical account exactly once, here.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.User, domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	ref, err := domain.ParseSubjectRef(identifier)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	var u domain.User
	if id, ok := ref.ID(); ok {
		u, err = s.Store.Users().GetUserByID(ctx, id)
	} else {
		email, _ := ref.Email()
		u, err = s.Store.Users().GetUserByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		log.Error("login lookup failed", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	if !u.Active {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		log.Error("password hash unreadable", slog.Int64("user_id", u.ID), slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.Tokens.Issue(u)
	if err != nil {
		log.Error("token issuance failed", slog.Int64("user_id", u.ID), slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	log.Info("login succeeded", slog.Int64("user_id", u.ID))
	return u, pair, nil
}
