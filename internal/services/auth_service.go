package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/repository"
)

// AuthService verifies credentials against the users workbook and manages
// Redis-backed sessions.
type AuthService struct {
	users    *repository.UserRepository
	sessions repository.SessionRepository
}

func NewAuthService(users *repository.UserRepository, sessions repository.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.UserSession, error) {
	if s.sessions == nil {
		return nil, fmt.Errorf("session store unavailable: %w", models.ErrConfiguration)
	}

	ok, err := s.users.VerifyCredentials(username, password)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		return nil, models.ErrUnauthorized
	}

	session := &models.UserSession{
		ID:       uuid.New().String(),
		Username: username,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	slog.Info("user logged in", "username", username, "session_id", session.ID)
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if s.sessions == nil {
		return fmt.Errorf("session store unavailable: %w", models.ErrConfiguration)
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

func (s *AuthService) IsSessionActive(ctx context.Context, sessionID string) (bool, error) {
	if s.sessions == nil {
		return false, fmt.Errorf("session store unavailable: %w", models.ErrConfiguration)
	}
	return s.sessions.IsSessionActive(ctx, sessionID)
}
