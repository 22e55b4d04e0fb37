package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio_server/internal/config"
	"portfolio_server/internal/domain"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

type fakeUserRepo struct {
	users    map[string]*domain.AdminUser
	sessions map[string]*domain.AdminSession
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*domain.AdminUser),
		sessions: make(map[string]*domain.AdminSession),
	}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if u, ok := r.users[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) CreateSession(_ context.Context, session *domain.AdminSession) error {
	r.sessions[session.RefreshTokenHash] = session
	return nil
}

func (r *fakeUserRepo) GetSessionByTokenHash(_ context.Context, tokenHash string) (*domain.AdminSession, error) {
	s, ok := r.sessions[tokenHash]
	if !ok || s.RevokedAt != nil || s.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeUserRepo) RevokeSession(_ context.Context, sessionID uuid.UUID, reason string) error {
	for _, s := range r.sessions {
		if s.ID == sessionID {
			now := time.Now()
			s.RevokedAt = &now
			s.RevokedReason = &reason
		}
	}
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.users["admin@example.com"] = &domain.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
	}

	cfg := config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
	return NewAuthService(repo, cfg, logger.NewNop()), repo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := newAuthFixture(t)

		result, err := svc.Login(ctx, "Admin@Example.com ", "correct-horse")
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Empty(t, result.User.PasswordHash)
		assert.Len(t, repo.sessions, 1)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, "nobody@example.com", "correct-horse")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("blank input", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)

	tokens, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, tokens.RefreshToken)

	// The rotated-out token is revoked and cannot be replayed.
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.Error(t, err)

	// The new token works.
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)

	user, err := svc.ValidateToken(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.ValidateToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	login, err := svc.Login(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.Error(t, err)

	// Logout of an already-dead token is fine.
	assert.NoError(t, svc.Logout(ctx, login.RefreshToken))
}
