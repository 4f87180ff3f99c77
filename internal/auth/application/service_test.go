package application

import (
	"context"
	"testing"
	"time"

	"github.com/agrigrow/storefront/internal/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryUserRepository struct {
	users  map[string]*domain.User
	nextID uint
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User), nextID: 1}
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) GetByID(_ context.Context, id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) error {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.Email] = user
	return nil
}

type memorySessionRepository struct {
	sessions map[string]*domain.AuthSession
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: make(map[string]*domain.AuthSession)}
}

func (r *memorySessionRepository) Save(_ context.Context, s *domain.AuthSession) error {
	r.sessions[s.Token] = s
	return nil
}

func (r *memorySessionRepository) Get(_ context.Context, token string) (*domain.AuthSession, error) {
	return r.sessions[token], nil
}

func (r *memorySessionRepository) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

type recordingCartCleaner struct {
	cleared []string
}

func (c *recordingCartCleaner) ClearCart(_ context.Context, userID string) error {
	c.cleared = append(c.cleared, userID)
	return nil
}

func newTestService() (*AuthApplicationService, *memorySessionRepository, *recordingCartCleaner) {
	sessions := newMemorySessionRepository()
	carts := &recordingCartCleaner{}
	return NewAuthApplicationService(newMemoryUserRepository(), sessions, carts), sessions, carts
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ravi@example.com", "password2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ravi@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginThenIdentify(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	userID, err := svc.Register(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, userID, session.UserID)

	identified, err := svc.Identify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, identified.UserID)
	assert.Equal(t, "ravi@example.com", identified.Email)
}

func TestIdentifyRejectsMissingOrExpiredSession(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Identify(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Identify(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sessions.sessions["stale"] = &domain.AuthSession{
		Token:     "stale",
		UserID:    "1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	_, err = svc.Identify(ctx, "stale")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	svc, _, carts := newTestService()
	ctx := context.Background()

	userID, err := svc.Register(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)
	session, err := svc.Login(ctx, "ravi@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.Identify(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, []string{userID}, carts.cleared)

	// 重复登出是无害的
	require.NoError(t, svc.Logout(ctx, session.Token))
	assert.Len(t, carts.cleared, 1)
}
