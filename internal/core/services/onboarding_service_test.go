package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/adapters/persistence/repositories"
	"rentwise-portal/internal/core/domain"
)

type memoryPending struct {
	mu      sync.Mutex
	rows    map[string]models.PendingRole
	takeErr error
}

func newMemoryPending() *memoryPending {
	return &memoryPending{rows: map[string]models.PendingRole{}}
}

func (m *memoryPending) Put(_ context.Context, p *models.PendingRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.State] = *p
	return nil
}

func (m *memoryPending) Take(_ context.Context, state string) (*models.PendingRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.takeErr != nil {
		return nil, m.takeErr
	}
	p, ok := m.rows[state]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(m.rows, state)
	return &p, nil
}

func (m *memoryPending) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, p := range m.rows {
		if p.ExpiresAt.Before(before) {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

const testState = "state-0123456789"

func unassigned() (*domain.RoleStatus, error) { return &domain.RoleStatus{RoleAssigned: false}, nil }

func TestCompleteSignIn_PendingRoleAssigned(t *testing.T) {
	api := &fakeMarket{roleStatus: unassigned}
	pending := newMemoryPending()
	svc := NewOnboardingService(api, pending, time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.SelectRole(ctx, testState, domain.RoleAgent))

	out := svc.CompleteSignIn(ctx, "tok", testState)
	assert.False(t, out.Logout)
	assert.Equal(t, "/dashboard/agent", out.Redirect)
	assert.Equal(t, domain.RoleAgent, out.Role)
	assert.Equal(t, []domain.Role{domain.RoleAgent}, api.assigned)

	// the pending selection is cleared
	_, err := pending.Take(ctx, testState)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCompleteSignIn_NoPendingAssignsTenant(t *testing.T) {
	api := &fakeMarket{roleStatus: unassigned}
	svc := NewOnboardingService(api, newMemoryPending(), time.Hour)

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.False(t, out.Logout)
	assert.Equal(t, "/dashboard/tenant", out.Redirect)
	assert.Equal(t, []domain.Role{domain.RoleTenant}, api.assigned)
}

func TestCompleteSignIn_AlreadyAssigned(t *testing.T) {
	landlord := domain.RoleLandlord
	api := &fakeMarket{roleStatus: func() (*domain.RoleStatus, error) {
		return &domain.RoleStatus{RoleAssigned: true, Role: &landlord}, nil
	}}
	pending := newMemoryPending()
	svc := NewOnboardingService(api, pending, time.Hour)
	require.NoError(t, svc.SelectRole(context.Background(), testState, domain.RoleAgent))

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.Equal(t, "/dashboard/landlord", out.Redirect)
	assert.Empty(t, api.assigned)
	assert.Equal(t, []string{"RoleStatus"}, api.Calls())
}

func TestCompleteSignIn_AssignedWithoutRoleLogsOut(t *testing.T) {
	bogus := domain.Role(42)
	for name, role := range map[string]*domain.Role{"missing": nil, "unknown": &bogus} {
		t.Run(name, func(t *testing.T) {
			api := &fakeMarket{roleStatus: func() (*domain.RoleStatus, error) {
				return &domain.RoleStatus{RoleAssigned: true, Role: role}, nil
			}}
			pending := newMemoryPending()
			svc := NewOnboardingService(api, pending, time.Hour)
			require.NoError(t, svc.SelectRole(context.Background(), testState, domain.RoleAgent))

			out := svc.CompleteSignIn(context.Background(), "tok", testState)
			assert.True(t, out.Logout)
			assert.Equal(t, LogoutPath, out.Redirect)
			assert.Empty(t, api.assigned)
			assert.Equal(t, []string{"RoleStatus"}, api.Calls())
		})
	}
}

func TestCompleteSignIn_RoleStatusFailureLogsOut(t *testing.T) {
	api := &fakeMarket{roleStatus: func() (*domain.RoleStatus, error) { return nil, unauthorized("RoleStatus") }}
	svc := NewOnboardingService(api, newMemoryPending(), time.Hour)

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.True(t, out.Logout)
	assert.Equal(t, LogoutPath, out.Redirect)
	assert.Empty(t, api.assigned)
}

func TestCompleteSignIn_PendingFailureFallsBackToTenant(t *testing.T) {
	api := &fakeMarket{
		roleStatus: unassigned,
		assignRole: func(role domain.Role) error {
			if role == domain.RoleLandlord {
				return apiError("AssignRole", http.StatusForbidden, "not allowed")
			}
			return nil
		},
	}
	pending := newMemoryPending()
	svc := NewOnboardingService(api, pending, time.Hour)
	require.NoError(t, svc.SelectRole(context.Background(), testState, domain.RoleLandlord))

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.False(t, out.Logout)
	assert.Equal(t, "/dashboard/tenant", out.Redirect)
	assert.Equal(t, []domain.Role{domain.RoleLandlord, domain.RoleTenant}, api.assigned)
}

func TestCompleteSignIn_FallbackFailureLogsOut(t *testing.T) {
	api := &fakeMarket{
		roleStatus: unassigned,
		assignRole: func(domain.Role) error { return apiError("AssignRole", http.StatusInternalServerError, "boom") },
	}
	svc := NewOnboardingService(api, newMemoryPending(), time.Hour)

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.True(t, out.Logout)
	assert.Equal(t, []domain.Role{domain.RoleTenant}, api.assigned)
}

func TestCompleteSignIn_PendingTenantFailureIsNotRetried(t *testing.T) {
	api := &fakeMarket{
		roleStatus: unassigned,
		assignRole: func(domain.Role) error { return apiError("AssignRole", http.StatusInternalServerError, "boom") },
	}
	pending := newMemoryPending()
	svc := NewOnboardingService(api, pending, time.Hour)
	require.NoError(t, svc.SelectRole(context.Background(), testState, domain.RoleTenant))

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.True(t, out.Logout)
	assert.Equal(t, []domain.Role{domain.RoleTenant}, api.assigned)
}

func TestCompleteSignIn_PendingStoreErrorCountsAsNone(t *testing.T) {
	api := &fakeMarket{roleStatus: unassigned}
	pending := newMemoryPending()
	pending.takeErr = errors.New("db down")
	svc := NewOnboardingService(api, pending, time.Hour)

	out := svc.CompleteSignIn(context.Background(), "tok", testState)
	assert.Equal(t, "/dashboard/tenant", out.Redirect)
}

func TestSelectRole_Validation(t *testing.T) {
	svc := NewOnboardingService(&fakeMarket{}, newMemoryPending(), time.Hour)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SelectRole(ctx, "short", domain.RoleTenant), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SelectRole(ctx, testState, domain.RoleAdmin), domain.ErrUnknownRole)
	assert.ErrorIs(t, svc.SelectRole(ctx, testState, domain.Role(42)), domain.ErrInvalidInput)
	assert.NoError(t, svc.SelectRole(ctx, testState, domain.RoleLandlord))
}

func TestPurgePending(t *testing.T) {
	pending := newMemoryPending()
	svc := NewOnboardingService(&fakeMarket{}, pending, -time.Minute)
	require.NoError(t, svc.SelectRole(context.Background(), testState, domain.RoleTenant))

	n, err := svc.PurgePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
