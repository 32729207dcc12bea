package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise-portal/internal/core/domain"
)

func TestUserService_Profile(t *testing.T) {
	api := &fakeMarket{}
	p, err := NewUserService(api).Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.User.ID)
	assert.True(t, p.UAEPass.Linked)
	assert.ElementsMatch(t, []string{"Me", "UAEPassStatus"}, api.Calls())
}

func TestUserService_Update(t *testing.T) {
	api := &fakeMarket{}
	svc := NewUserService(api)
	name := "  Layla "
	phone := "0501234567"

	u, err := svc.Update(context.Background(), "tok", UpdateProfileInput{FirstName: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Layla", u.FirstName)

	_, err = svc.Update(context.Background(), "tok", UpdateProfileInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "12345"
	_, err = svc.Update(context.Background(), "tok", UpdateProfileInput{Phone: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"UpdateMe"}, api.Calls())
}

func TestUAEPassService(t *testing.T) {
	api := &fakeMarket{}
	svc := NewUAEPassService(api)
	ctx := context.Background()

	u, state, err := svc.Authorize(ctx, "tok", "")
	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Contains(t, u, state)

	_, err = svc.UserInfo(ctx, "tok", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sess, err := svc.StartSignature(ctx, "tok", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-doc-1", sess.TransactionID)

	sess, err = svc.SignatureStatus(ctx, "tok", "tx-doc-1")
	require.NoError(t, err)
	assert.Equal(t, "SIGNED", sess.Status)
}
