package marketapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

// fakeMarket answers every request with status and body and records what it saw
func fakeMarket(t *testing.T, status int, body string) (*Client, *[]recorded) {
	t.Helper()
	var seen []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen = append(seen, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   raw,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 5*time.Second), &seen
}

func TestBearerAndRequestIDAreSent(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `{"id":"b1","status":"ACCEPTED","amount":90000}`)
	ctx := logger.WithRequestID(context.Background(), "req-123")

	bid, err := client.AcceptBid(ctx, "tok-abc", "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.BidAccepted, bid.Status)

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/bids/b1/accept", got.path)
	assert.Equal(t, "Bearer tok-abc", got.header.Get("Authorization"))
	assert.Equal(t, "req-123", got.header.Get("X-Request-ID"))
	assert.Empty(t, got.header.Get("Cookie"))
}

func TestDataEnvelopeIsUnwrapped(t *testing.T) {
	client, _ := fakeMarket(t, http.StatusOK, `{"success":true,"data":[{"id":"b1","status":"OPEN"},{"id":"b2","status":"WITHDRAWN"}]}`)

	bids, err := client.ListBids(context.Background(), "tok", "")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, domain.BidWithdrawn, bids[1].Status)
}

func TestListBidsForUser(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `[]`)

	_, err := client.ListBids(context.Background(), "tok", "u-7")
	require.NoError(t, err)
	assert.Equal(t, "userId=u-7", (*seen)[0].query)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized", 401, `{}`, ErrUnauthorized, "Failed to accept bid"},
		{"not found with message", 404, `{"message":"Bid not found"}`, ErrNotFound, "Bid not found"},
		{"conflict with error field", 409, `{"error":"Bid already accepted"}`, ErrConflict, "Bid already accepted"},
		{"validation with detail", 422, `{"detail":"Amount too low"}`, ErrValidation, "Amount too low"},
		{"server error non json", 500, `oops`, ErrUnavailable, "Failed to accept bid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, seen := fakeMarket(t, tt.status, tt.body)

			_, err := client.AcceptBid(context.Background(), "tok", "b1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "AcceptBid", apiErr.Op)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.message, UserMessage(err))

			// no retry
			assert.Len(t, *seen, 1)
		})
	}
}

func TestTransportFailureUsesFixedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	_, err := client.WithdrawBid(context.Background(), "tok", "b1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, "Failed to withdraw bid", UserMessage(err))
}

func TestCounterBidBody(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `{"id":"b1","status":"COUNTER_OFFER","amount":95000}`)

	bid, err := client.CounterBid(context.Background(), "tok", "b1", CounterBidRequest{Amount: 95000, Message: "meet halfway"})
	require.NoError(t, err)
	assert.Equal(t, domain.BidCounterOffer, bid.Status)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal((*seen)[0].body, &sent))
	assert.Equal(t, 95000.0, sent["amount"])
	assert.Equal(t, "meet halfway", sent["message"])
	assert.Equal(t, "application/json", (*seen)[0].header.Get("Content-Type"))
}

func TestAssignRoleSendsNumericID(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusNoContent, ``)

	require.NoError(t, client.AssignRole(context.Background(), "tok", domain.RoleAgent))
	assert.Equal(t, "/api/users/assign-role", (*seen)[0].path)
	assert.JSONEq(t, `{"role_id":3}`, string((*seen)[0].body))
}

func TestRoleStatus(t *testing.T) {
	client, _ := fakeMarket(t, http.StatusOK, `{"role_assigned":true,"role":1}`)

	status, err := client.RoleStatus(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, status.RoleAssigned)
	require.NotNil(t, status.Role)
	assert.Equal(t, domain.RoleLandlord, *status.Role)
}

func TestApartmentFilterQuery(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `[]`)
	beds := 2
	furnished := true

	_, err := client.ListApartments(context.Background(), "", domain.ApartmentFilter{
		Query:     "marina",
		City:      "Dubai",
		MinPrice:  50000,
		Bedrooms:  &beds,
		Furnished: &furnished,
	})
	require.NoError(t, err)

	q := (*seen)[0].query
	for _, part := range []string{"search=marina", "city=Dubai", "min_price=50000", "bedrooms=2", "furnished=true"} {
		assert.Contains(t, q, part)
	}
	assert.NotContains(t, q, "max_price")
	assert.Empty(t, (*seen)[0].header.Get("Authorization"))
}

func TestCancelBookingPath(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `{"id":"t1","status":"CANCELLED"}`)

	tour, err := client.CancelBooking(context.Background(), "tok", "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TourCancelled, tour.Status)
	assert.Equal(t, http.MethodPut, (*seen)[0].method)
	assert.Equal(t, "/api/bookings/t1/cancel", (*seen)[0].path)
}

func TestAgentRowsWithMissingFields(t *testing.T) {
	client, _ := fakeMarket(t, http.StatusOK, `[{"bid_id":"b1","property_name":"Marina View","tenant_name":"Sara","amount":80000,"status":"OPEN"}]`)

	rows, err := client.AgentBids(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].AskingPrice)
	assert.Nil(t, rows[0].SubmittedAt)
}

func TestCreateBrokerageIsMultipart(t *testing.T) {
	var fields map[string]string
	var fileNames []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		for _, fh := range r.MultipartForm.File["documents"] {
			fileNames = append(fileNames, fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"br1","name":"Palm Realty"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	br, err := client.CreateBrokerage(context.Background(), "tok", BrokerageRequest{
		Name:          "Palm Realty",
		LicenseNumber: "TL-1234",
		Email:         "ops@palm.ae",
		Phone:         "0501234567",
		Documents: []domain.Document{
			{FileName: "licence.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "br1", br.ID)
	assert.Equal(t, "Palm Realty", fields["name"])
	assert.Equal(t, "TL-1234", fields["license_number"])
	_, hasAddress := fields["address"]
	assert.False(t, hasAddress)
	assert.Equal(t, []string{"licence.pdf"}, fileNames)
}

func TestAuthorizeURL(t *testing.T) {
	client, seen := fakeMarket(t, http.StatusOK, `{"url":"https://id.uaepass.ae/authorize?x=1"}`)

	u, err := client.AuthorizeURL(context.Background(), "tok", "st-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://id.uaepass.ae/"))
	assert.Equal(t, "state=st-1", (*seen)[0].query)
}
