package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sid string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

type Config struct {
	RefreshTTL time.Duration
}

type Dependencies struct {
	Sessions SessionStore
	Tokens   *JWTManager
}

type Service struct {
	sessions SessionStore
	tokens   *JWTManager
	cfg      Config

	now func() time.Time
}

func NewService(deps Dependencies, cfg Config) (*Service, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("jwt manager is nil")
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}

	return &Service{
		sessions: deps.Sessions,
		tokens:   deps.Tokens,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// IssueSession creates a new session for an already-authenticated user and
// returns the access/refresh token pair.
func (s *Service) IssueSession(ctx context.Context, userID int64, role string) (AuthResult, error) {
	if userID <= 0 || strings.TrimSpace(role) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	sid := NewSessionID()
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	session := SessionRecord{
		SID:       sid,
		UserID:    userID,
		Role:      role,
		ExpiresAt: s.now().UTC().Add(s.cfg.RefreshTTL),
	}
	if err := s.sessions.Create(ctx, session, refreshToken); err != nil {
		return AuthResult{}, fmt.Errorf("store session: %w", err)
	}

	accessToken, accessExpires, err := s.tokens.GenerateAccessToken(userID, sid, role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
		Me:            Me{ID: userID, Role: role},
	}, nil
}

// Refresh rotates the refresh token and issues a fresh access token. The old
// refresh token is invalidated even when the caller retries.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("resolve refresh token: %w", err)
	}

	newRefreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	expiresAt := s.now().UTC().Add(s.cfg.RefreshTTL)
	if err := s.sessions.RotateRefresh(ctx, session.SID, refreshToken, newRefreshToken, expiresAt); err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	accessToken, accessExpires, err := s.tokens.GenerateAccessToken(session.UserID, session.SID, session.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  newRefreshToken,
		AccessExpires: accessExpires,
		Me:            Me{ID: session.UserID, Role: session.Role},
	}, nil
}

// ValidateAccessToken checks the token signature and confirms the session is
// still alive in the store, so logout takes effect before token expiry.
func (s *Service) ValidateAccessToken(ctx context.Context, raw string) (Identity, error) {
	claims, err := s.tokens.ParseAccessToken(raw)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	if session.UserID != claims.UserID {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		UserID: claims.UserID,
		SID:    claims.SID,
		Role:   session.Role,
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	return s.sessions.DeleteSession(ctx, sid)
}

func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidInput
	}
	return s.sessions.DeleteAllForUser(ctx, userID)
}
