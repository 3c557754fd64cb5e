package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Plauto679/taiico-crm/internal/models"
)

// SessionRepository handles session-related Redis operations
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.UserSession) error
	GetSession(ctx context.Context, sessionID string) (*models.UserSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	IsSessionActive(ctx context.Context, sessionID string) (bool, error)
}

type sessionRepository struct {
	client     *redis.Client
	expiration time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{
		client:     client,
		expiration: 8 * time.Hour, // one working day
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.UserSession) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if session.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	session.CreatedAt = time.Now()
	session.ExpiresAt = time.Now().Add(r.expiration)
	session.IsActive = true

	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.getSessionKey(session.ID), sessionData, r.expiration).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	data, err := r.client.Get(ctx, r.getSessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.getSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) IsSessionActive(ctx context.Context, sessionID string) (bool, error) {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return session.IsActive && time.Now().Before(session.ExpiresAt), nil
}

func (r *sessionRepository) getSessionKey(sessionID string) string {
	return fmt.Sprintf("crm:session:%s", sessionID)
}
