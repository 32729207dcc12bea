package services

import (
	"context"
	"path/filepath"
	"strings"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
	"rentwise-portal/internal/pkg/validate"
)

const (
	// MaxDocumentSize is the per-file upload limit
	MaxDocumentSize = 10 << 20
	maxDocuments    = 10
)

var allowedDocumentTypes = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// BrokerageService validates onboarding forms and forwards them with their documents
type BrokerageService struct {
	api BrokerageAPI
}

func NewBrokerageService(api BrokerageAPI) *BrokerageService {
	return &BrokerageService{api: api}
}

// BrokerageInput is the brokerage registration form
type BrokerageInput struct {
	Name          string `json:"name" form:"name" validate:"required,max=200"`
	LicenseNumber string `json:"license_number" form:"license_number" validate:"required,max=50"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Phone         string `json:"phone" form:"phone" validate:"required,uaephone"`
	Address       string `json:"address" form:"address" validate:"max=500"`
}

// MemberInput is the manager or agent form
type MemberInput struct {
	BrokerageID string `json:"brokerage_id" form:"brokerage_id" validate:"required"`
	FirstName   string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Phone       string `json:"phone" form:"phone" validate:"required,uaephone"`
	LicenseNo   string `json:"license_number" form:"license_number" validate:"max=50"`
}

func (s *BrokerageService) CreateBrokerage(ctx context.Context, token string, in BrokerageInput, docs []domain.Document) (*domain.Brokerage, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkDocuments(docs, true); err != nil {
		return nil, err
	}
	br, err := s.api.CreateBrokerage(ctx, token, marketapi.BrokerageRequest{
		Name:          strings.TrimSpace(in.Name),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		Email:         strings.TrimSpace(in.Email),
		Phone:         in.Phone,
		Address:       in.Address,
		Documents:     docs,
	})
	if err != nil {
		return nil, fromUpstream(err, "A brokerage with this licence number already exists")
	}
	logger.FromContext(ctx).Info("brokerage registered", "brokerage_id", br.ID, "documents", len(docs))
	return br, nil
}

func (s *BrokerageService) CreateManager(ctx context.Context, token string, in MemberInput, docs []domain.Document) (*domain.Member, error) {
	return s.createMember(ctx, token, domain.RoleManager, in, docs)
}

func (s *BrokerageService) CreateAgent(ctx context.Context, token string, in MemberInput, docs []domain.Document) (*domain.Member, error) {
	return s.createMember(ctx, token, domain.RoleAgent, in, docs)
}

func (s *BrokerageService) createMember(ctx context.Context, token string, role domain.Role, in MemberInput, docs []domain.Document) (*domain.Member, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkDocuments(docs, false); err != nil {
		return nil, err
	}
	req := marketapi.MemberRequest{
		BrokerageID: in.BrokerageID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		LicenseNo:   in.LicenseNo,
		Documents:   docs,
	}

	var (
		m   *domain.Member
		err error
	)
	if role == domain.RoleManager {
		m, err = s.api.CreateManager(ctx, token, req)
	} else {
		m, err = s.api.CreateAgent(ctx, token, req)
	}
	if err != nil {
		return nil, fromUpstream(err, "An account with this email already exists")
	}
	logger.FromContext(ctx).Info("brokerage member created", "role", role.String(), "member_id", m.ID)
	return m, nil
}

// checkDocuments enforces file count, size and type
func checkDocuments(docs []domain.Document, required bool) error {
	if required && len(docs) == 0 {
		return newError(domain.ErrInvalidInput, "Upload at least one licence document")
	}
	if len(docs) > maxDocuments {
		return newError(domain.ErrInvalidInput, "Too many documents")
	}
	for _, d := range docs {
		if len(d.Content) == 0 {
			return newError(domain.ErrInvalidInput, d.FileName+" is empty")
		}
		if len(d.Content) > MaxDocumentSize {
			return newError(domain.ErrInvalidInput, d.FileName+" is larger than 10 MB")
		}
		if !allowedDocumentTypes[strings.ToLower(filepath.Ext(d.FileName))] {
			return newError(domain.ErrInvalidInput, d.FileName+" must be a PDF, JPG or PNG file")
		}
	}
	return nil
}
