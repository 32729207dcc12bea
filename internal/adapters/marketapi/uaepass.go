package marketapi

import (
	"context"
	"net/http"
	"net/url"
)

// UAEPassUser is the identity UAE Pass returns for an authorization code
type UAEPassUser struct {
	UAEPassID   string `json:"uaepass_id"`
	Email       string `json:"email"`
	FullNameEN  string `json:"full_name_en"`
	Mobile      string `json:"mobile"`
	IDN         string `json:"idn,omitempty"`
	UserType    string `json:"user_type"`
	Nationality string `json:"nationality,omitempty"`
}

// SignatureSession is an e-signature request in progress
type SignatureSession struct {
	TransactionID string `json:"transaction_id"`
	SigningURL    string `json:"signing_url,omitempty"`
	Status        string `json:"status"`
	DocumentURL   string `json:"document_url,omitempty"`
}

type authorizeResponse struct {
	URL string `json:"url"`
}

// AuthorizeURL asks the marketplace for the UAE Pass login URL bound to state
func (c *Client) AuthorizeURL(ctx context.Context, token, state string) (string, error) {
	var out authorizeResponse
	err := c.do(ctx, call{
		op:      "UAEPassAuthorize",
		failure: "Failed to start UAE Pass sign-in",
		method:  http.MethodGet,
		path:    "/uaepass/authorize",
		query:   url.Values{"state": {state}},
		token:   token,
	}, &out)
	return out.URL, err
}

func (c *Client) UserInfo(ctx context.Context, token, code string) (*UAEPassUser, error) {
	var out UAEPassUser
	err := c.do(ctx, call{
		op:      "UAEPassUserInfo",
		failure: "Failed to verify UAE Pass account",
		method:  http.MethodPost,
		path:    "/uaepass/userinfo",
		token:   token,
		body:    map[string]string{"code": code},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignatureInit(ctx context.Context, token, documentID string) (*SignatureSession, error) {
	var out SignatureSession
	err := c.do(ctx, call{
		op:      "UAEPassSignatureInit",
		failure: "Failed to start document signing",
		method:  http.MethodPost,
		path:    "/uaepass/signature/init",
		token:   token,
		body:    map[string]string{"document_id": documentID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignatureStatus(ctx context.Context, token, transactionID string) (*SignatureSession, error) {
	var out SignatureSession
	err := c.do(ctx, call{
		op:      "UAEPassSignatureStatus",
		failure: "Failed to load signing status",
		method:  http.MethodGet,
		path:    "/uaepass/signature/status/" + escape(transactionID),
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
