package marketapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"rentwise-portal/internal/core/domain"
)

// BrokerageRequest registers a brokerage with its licence documents
type BrokerageRequest struct {
	Name          string
	LicenseNumber string
	Email         string
	Phone         string
	Address       string
	Documents     []domain.Document
}

// MemberRequest creates a manager or agent under a brokerage
type MemberRequest struct {
	BrokerageID string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	LicenseNo   string
	Documents   []domain.Document
}

func (r BrokerageRequest) fields() map[string]string {
	return map[string]string{
		"name":           r.Name,
		"license_number": r.LicenseNumber,
		"email":          r.Email,
		"phone":          r.Phone,
		"address":        r.Address,
	}
}

func (r MemberRequest) fields() map[string]string {
	return map[string]string{
		"brokerage_id":   r.BrokerageID,
		"first_name":     r.FirstName,
		"last_name":      r.LastName,
		"email":          r.Email,
		"phone":          r.Phone,
		"license_number": r.LicenseNo,
	}
}

func (c *Client) CreateBrokerage(ctx context.Context, token string, req BrokerageRequest) (*domain.Brokerage, error) {
	body, contentType, err := multipartBody(req.fields(), req.Documents)
	if err != nil {
		return nil, &APIError{Op: "CreateBrokerage", Message: "Failed to register brokerage", Err: err}
	}
	var out domain.Brokerage
	err = c.do(ctx, call{
		op:          "CreateBrokerage",
		failure:     "Failed to register brokerage",
		method:      http.MethodPost,
		path:        "/dashboard/brokerage/create-brokerage",
		token:       token,
		rawBody:     body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateManager(ctx context.Context, token string, req MemberRequest) (*domain.Member, error) {
	return c.createMember(ctx, token, "CreateManager", "Failed to create manager", "/dashboard/brokerage/create-manager", req)
}

func (c *Client) CreateAgent(ctx context.Context, token string, req MemberRequest) (*domain.Member, error) {
	return c.createMember(ctx, token, "CreateAgent", "Failed to create agent", "/dashboard/brokerage/create-agent", req)
}

func (c *Client) createMember(ctx context.Context, token, op, failure, path string, req MemberRequest) (*domain.Member, error) {
	body, contentType, err := multipartBody(req.fields(), req.Documents)
	if err != nil {
		return nil, &APIError{Op: op, Message: failure, Err: err}
	}
	var out domain.Member
	err = c.do(ctx, call{
		op:          op,
		failure:     failure,
		method:      http.MethodPost,
		path:        path,
		token:       token,
		rawBody:     body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// multipartBody writes the form fields then one part per document
func multipartBody(fields map[string]string, docs []domain.Document) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, doc := range docs {
		field := doc.Field
		if field == "" {
			field = "documents"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, doc.FileName))
		contentType := doc.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(doc.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
