package services

import (
	"context"

	"github.com/google/uuid"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
)

// UAEPassService links accounts to UAE Pass and runs document e-signature
type UAEPassService struct {
	api UAEPassAPI
}

func NewUAEPassService(api UAEPassAPI) *UAEPassService {
	return &UAEPassService{api: api}
}

// Authorize returns the login URL and the state it is bound to. A state is generated
// when the caller has none.
func (s *UAEPassService) Authorize(ctx context.Context, token, state string) (string, string, error) {
	if state == "" {
		state = uuid.NewString()
	}
	u, err := s.api.AuthorizeURL(ctx, token, state)
	if err != nil {
		return "", "", fromUpstream(err, "")
	}
	return u, state, nil
}

func (s *UAEPassService) UserInfo(ctx context.Context, token, code string) (*marketapi.UAEPassUser, error) {
	if code == "" {
		return nil, newError(domain.ErrInvalidInput, "Missing UAE Pass authorization code")
	}
	info, err := s.api.UserInfo(ctx, token, code)
	if err != nil {
		return nil, fromUpstream(err, "This UAE Pass account is already linked to another user")
	}
	return info, nil
}

func (s *UAEPassService) StartSignature(ctx context.Context, token, documentID string) (*marketapi.SignatureSession, error) {
	if documentID == "" {
		return nil, newError(domain.ErrInvalidInput, "Choose a document to sign")
	}
	sess, err := s.api.SignatureInit(ctx, token, documentID)
	if err != nil {
		return nil, fromUpstream(err, "This document is already being signed")
	}
	return sess, nil
}

func (s *UAEPassService) SignatureStatus(ctx context.Context, token, transactionID string) (*marketapi.SignatureSession, error) {
	sess, err := s.api.SignatureStatus(ctx, token, transactionID)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return sess, nil
}
