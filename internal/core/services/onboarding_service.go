package services

import (
	"context"
	"errors"
	"time"

	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/adapters/persistence/repositories"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
)

const (
	minStateLen = 8
	maxStateLen = 128
)

// Outcome is where the sign-in callback sends the user
type Outcome struct {
	Redirect string      `json:"redirect"`
	Logout   bool        `json:"logout"`
	Role     domain.Role `json:"role,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// OnboardingService runs the post-sign-in role assignment
type OnboardingService struct {
	users   UserAPI
	pending repositories.PendingRoleRepository
	ttl     time.Duration
	now     func() time.Time
}

func NewOnboardingService(users UserAPI, pending repositories.PendingRoleRepository, ttl time.Duration) *OnboardingService {
	return &OnboardingService{users: users, pending: pending, ttl: ttl, now: time.Now}
}

// SelectRole remembers the role picked on the sign-up page until the callback for state arrives
func (s *OnboardingService) SelectRole(ctx context.Context, state string, role domain.Role) error {
	if len(state) < minStateLen || len(state) > maxStateLen {
		return newError(domain.ErrInvalidInput, "Invalid sign-up state")
	}
	if !role.SelfSelectable() {
		return &Error{Kind: domain.ErrInvalidInput, Message: "This role cannot be chosen at sign-up", Err: domain.ErrUnknownRole}
	}
	return s.pending.Put(ctx, &models.PendingRole{
		State:     state,
		RoleID:    int(role),
		ExpiresAt: s.now().Add(s.ttl),
	})
}

// CompleteSignIn decides the landing page after the identity provider returns.
// Each step runs once; the only fallback is the default role.
func (s *OnboardingService) CompleteSignIn(ctx context.Context, token, state string) Outcome {
	log := logger.FromContext(ctx).With("component", "onboarding")

	status, err := s.users.RoleStatus(ctx, token)
	if err != nil {
		log.Warn("role status fetch failed", "error", err)
		return logout("Could not load your account, please sign in again")
	}

	if status.RoleAssigned {
		if status.Role != nil && status.Role.Valid() {
			return landOn(*status.Role)
		}
		// The account already has a role; assigning another would overwrite it.
		log.Warn("role marked assigned without a known role", "role_present", status.Role != nil)
		return logout("Could not load your account, please sign in again")
	}

	if pending, ok := s.takePending(ctx, state); ok {
		err := s.users.AssignRole(ctx, token, pending)
		if err == nil {
			log.Info("pending role assigned", "role", pending.String())
			return landOn(pending)
		}
		log.Warn("pending role assignment failed, falling back", "role", pending.String(), "error", err)
		if pending == domain.DefaultRole {
			return logout("Could not set up your account, please sign in again")
		}
	}

	if err := s.users.AssignRole(ctx, token, domain.DefaultRole); err != nil {
		log.Error("default role assignment failed", "error", err)
		return logout("Could not set up your account, please sign in again")
	}
	log.Info("default role assigned", "role", domain.DefaultRole.String())
	return landOn(domain.DefaultRole)
}

// takePending consumes the stored selection; a store failure counts as none
func (s *OnboardingService) takePending(ctx context.Context, state string) (domain.Role, bool) {
	if state == "" {
		return 0, false
	}
	p, err := s.pending.Take(ctx, state)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.FromContext(ctx).Warn("pending role lookup failed", "error", err)
		}
		return 0, false
	}
	role := domain.Role(p.RoleID)
	if !role.Valid() {
		return 0, false
	}
	return role, true
}

// PurgePending deletes selections whose callback never came
func (s *OnboardingService) PurgePending(ctx context.Context) (int64, error) {
	return s.pending.DeleteExpired(ctx, s.now())
}

func landOn(role domain.Role) Outcome {
	return Outcome{Redirect: role.DashboardPath(), Role: role}
}

func logout(reason string) Outcome {
	return Outcome{Redirect: LogoutPath, Logout: true, Reason: reason}
}

// LogoutPath is the front-end route that clears client state
const LogoutPath = "/auth/logout"
