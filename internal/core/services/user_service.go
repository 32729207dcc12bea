package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/validate"
)

// UserService reads and edits the signed-in user's profile
type UserService struct {
	api UserAPI
}

// NewUserService creates a new user service
func NewUserService(api UserAPI) *UserService {
	return &UserService{api: api}
}

// UpdateProfileInput is a partial profile edit
type UpdateProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,uaephone"`
}

// Profile is the user plus their onboarding state
type Profile struct {
	User    *domain.User          `json:"user"`
	UAEPass *domain.UAEPassStatus `json:"uaepass"`
}

// Profile loads the user and their UAE Pass link in parallel
func (s *UserService) Profile(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.User, err = s.api.Me(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		p.UAEPass, err = s.api.UAEPassStatus(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromUpstream(err, "")
	}
	return &p, nil
}

func (s *UserService) Update(ctx context.Context, token string, in UpdateProfileInput) (*domain.User, error) {
	upd := marketapi.ProfileUpdate{
		FirstName: trimmed(in.FirstName),
		LastName:  trimmed(in.LastName),
		Phone:     trimmed(in.Phone),
	}
	if upd.FirstName == nil && upd.LastName == nil && upd.Phone == nil {
		return nil, newError(domain.ErrInvalidInput, "Nothing to update")
	}
	if upd.Phone != nil && !validate.IsValidPhone(*upd.Phone) {
		return nil, newError(domain.ErrInvalidInput, "Enter a UAE mobile number")
	}

	user, err := s.api.UpdateMe(ctx, token, upd)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return user, nil
}

// RoleStatus reports whether the user finished onboarding
func (s *UserService) RoleStatus(ctx context.Context, token string) (*domain.RoleStatus, error) {
	status, err := s.api.RoleStatus(ctx, token)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return status, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
