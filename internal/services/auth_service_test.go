package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/repository"
)

type fakeSessionRepository struct {
	sessions map[string]*models.UserSession
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*models.UserSession)}
}

func (f *fakeSessionRepository) CreateSession(_ context.Context, s *models.UserSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepository) GetSession(_ context.Context, id string) (*models.UserSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return s, nil
}

func (f *fakeSessionRepository) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepository) IsSessionActive(_ context.Context, id string) (bool, error) {
	_, ok := f.sessions[id]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeSessionRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usuarios.xlsx")
	writeFixtureWorkbook(t, path, "Usuarios", [][]any{
		{"Usuario", "Password"},
		{"admin", "secreto"},
	})

	users := repository.NewUserRepository(ledger.NewStore(), path)
	sessions := newFakeSessionRepository()
	return NewAuthService(users, sessions), sessions
}

func TestLogin(t *testing.T) {
	svc, sessions := newAuthFixture(t)

	session, err := svc.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "admin", session.Username)

	active, err := svc.IsSessionActive(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Len(t, sessions.sessions, 1)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, sessions := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "admin", "equivocada")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Empty(t, sessions.sessions)
}

func TestLogin_NoSessionStore(t *testing.T) {
	svc, _ := newAuthFixture(t)
	svc.sessions = nil

	_, err := svc.Login(context.Background(), "admin", "secreto")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestLogout(t *testing.T) {
	svc, _ := newAuthFixture(t)

	session, err := svc.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))

	active, err := svc.IsSessionActive(context.Background(), session.ID)
	require.NoError(t, err)
	assert.False(t, active)
}
