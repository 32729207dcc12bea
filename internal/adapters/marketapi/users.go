package marketapi

import (
	"context"
	"net/http"

	"rentwise-portal/internal/core/domain"
)

// ProfileUpdate is a partial profile edit; nil fields are not sent
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type assignRoleRequest struct {
	RoleID domain.Role `json:"role_id"`
}

// Me returns the user behind token. A 401 means the token is no longer valid.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		op:      "Me",
		failure: "Failed to load profile",
		method:  http.MethodGet,
		path:    "/users/me",
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, upd ProfileUpdate) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		op:      "UpdateMe",
		failure: "Failed to update profile",
		method:  http.MethodPatch,
		path:    "/users/me",
		token:   token,
		body:    upd,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RoleStatus(ctx context.Context, token string) (*domain.RoleStatus, error) {
	var out domain.RoleStatus
	err := c.do(ctx, call{
		op:      "RoleStatus",
		failure: "Failed to load role status",
		method:  http.MethodGet,
		path:    "/users/me/role-status",
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UAEPassStatus(ctx context.Context, token string) (*domain.UAEPassStatus, error) {
	var out domain.UAEPassStatus
	err := c.do(ctx, call{
		op:      "UAEPassStatus",
		failure: "Failed to load UAE Pass status",
		method:  http.MethodGet,
		path:    "/users/me/uaepass-status",
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignRole sets the user's role; the role is sent by numeric id
func (c *Client) AssignRole(ctx context.Context, token string, role domain.Role) error {
	return c.do(ctx, call{
		op:      "AssignRole",
		failure: "Failed to assign role",
		method:  http.MethodPost,
		path:    "/users/assign-role",
		token:   token,
		body:    assignRoleRequest{RoleID: role},
	}, nil)
}
