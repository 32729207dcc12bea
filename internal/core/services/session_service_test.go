package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/adapters/persistence/repositories"
	"rentwise-portal/internal/core/domain"
)

const testSecret = "test-session-secret"

func setupSessionService(t *testing.T, api *fakeMarket) (*SessionService, repositories.SessionRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	repo := repositories.NewSessionRepository(db)
	return NewSessionService(repo, api, testSecret, 12*time.Hour), repo
}

func upstreamToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"exp":   exp.Unix(),
	})
	s, err := tok.SignedString([]byte("upstream-key"))
	require.NoError(t, err)
	return s
}

func TestSessionService_BeginFromJWT(t *testing.T) {
	api := &fakeMarket{}
	svc, _ := setupSessionService(t, api)
	exp := time.Now().Add(time.Hour)

	session, cookie, err := svc.Begin(context.Background(), upstreamToken(t, "user-9", exp))
	require.NoError(t, err)
	assert.NotEmpty(t, cookie)
	assert.Equal(t, "user-9", session.UserID)
	assert.Equal(t, "user-9@example.com", session.Email)
	// the shorter upstream expiry wins
	assert.WithinDuration(t, exp, session.ExpiresAt, time.Second)
	assert.Empty(t, api.Calls())
}

func TestSessionService_BeginOpaqueTokenAsksMarketplace(t *testing.T) {
	api := &fakeMarket{}
	svc, _ := setupSessionService(t, api)

	session, _, err := svc.Begin(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, []string{"Me"}, api.Calls())
}

func TestSessionService_BeginRejectsEmptyToken(t *testing.T) {
	svc, _ := setupSessionService(t, &fakeMarket{})
	_, _, err := svc.Begin(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionService_ResolveAndEnd(t *testing.T) {
	svc, _ := setupSessionService(t, &fakeMarket{})
	ctx := context.Background()

	session, cookie, err := svc.Begin(ctx, "opaque-token")
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "opaque-token", got.UpstreamToken)

	require.NoError(t, svc.End(ctx, got))
	_, err = svc.Resolve(ctx, cookie)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionService_ResolveRejectsForgedCookie(t *testing.T) {
	svc, _ := setupSessionService(t, &fakeMarket{})
	_, err := svc.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionService_Check401RevokesSession(t *testing.T) {
	api := &fakeMarket{}
	svc, _ := setupSessionService(t, api)
	ctx := context.Background()

	session, cookie, err := svc.Begin(ctx, "opaque-token")
	require.NoError(t, err)

	api.me = func(string) (*domain.User, error) { return nil, unauthorized("Me") }
	_, err = svc.Check(ctx, session)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Resolve(ctx, cookie)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionService_Check401RevokesEveryUserSession(t *testing.T) {
	api := &fakeMarket{}
	svc, repo := setupSessionService(t, api)
	ctx := context.Background()

	laptop, laptopCookie, err := svc.Begin(ctx, "opaque-token")
	require.NoError(t, err)
	_, phoneCookie, err := svc.Begin(ctx, "opaque-token")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &models.Session{
		ID: "other", UserID: "u2", UpstreamToken: "y", ExpiresAt: time.Now().Add(time.Hour),
	}))

	count, err := repo.CountActiveByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	api.me = func(string) (*domain.User, error) { return nil, unauthorized("Me") }
	_, err = svc.Check(ctx, laptop)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	for _, cookie := range []string{laptopCookie, phoneCookie} {
		_, err = svc.Resolve(ctx, cookie)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	count, err = repo.CountActiveByUserID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionService_CheckRecordsRole(t *testing.T) {
	agent := domain.RoleAgent
	api := &fakeMarket{}
	svc, _ := setupSessionService(t, api)
	ctx := context.Background()

	session, cookie, err := svc.Begin(ctx, "opaque-token")
	require.NoError(t, err)

	api.me = func(string) (*domain.User, error) { return &domain.User{ID: "u1", Role: &agent}, nil }
	user, err := svc.Check(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	reloaded, err := svc.Resolve(ctx, cookie)
	require.NoError(t, err)
	role, ok := SessionRole(reloaded)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAgent, role)
}

func TestSessionService_Purge(t *testing.T) {
	svc, repo := setupSessionService(t, &fakeMarket{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Session{
		ID: "old", UserID: "u1", UpstreamToken: "x", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	n, err := svc.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
