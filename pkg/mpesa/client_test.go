package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		Passkey:        "test-passkey",
		ShortCode:      "174379",
		CallbackURL:    "https://example.com/api/mpesa-callback",
	}
}

func TestAccessToken_Success(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/v1/generate", r.URL.Path)
		require.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token-123",
			"expires_in":   "3599",
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	token, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-123", token)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-key:test-secret"))
	require.Equal(t, expected, gotAuth)
}

func TestAccessToken_UpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessage":"Invalid Authentication passed"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.AccessToken(context.Background())
	// Upstream detail must not leak into the returned error.
	require.ErrorIs(t, err, ErrTokenFailed)
	require.NotContains(t, err.Error(), "Invalid Authentication")
}

func TestAccessToken_NotConfigured(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.AccessToken(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSTKPush_Success(t *testing.T) {
	var tokenCalls, pushCalls int
	var pushed stkPushPayload
	var bearer string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v1/generate":
			tokenCalls++
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-abc"})
		case "/mpesa/stkpush/v1/processrequest":
			pushCalls++
			bearer = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
			_ = json.NewEncoder(w).Encode(STKPushResponse{
				MerchantRequestID:   "29115-34620561-1",
				CheckoutRequestID:   "ws_CO_191220191020363925",
				ResponseCode:        "0",
				ResponseDescription: "Success. Request accepted for processing",
				CustomerMessage:     "Success. Request accepted for processing",
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	resp, err := c.STKPush(context.Background(), STKPushParams{
		Amount:      json.Number("100"),
		PhoneNumber: "254712345678",
	})
	require.NoError(t, err)
	require.True(t, resp.Accepted())
	require.Equal(t, "ws_CO_191220191020363925", resp.CheckoutRequestID)

	// Exactly one token request and one push request per invocation.
	require.Equal(t, 1, tokenCalls)
	require.Equal(t, 1, pushCalls)
	require.Equal(t, "Bearer token-abc", bearer)

	require.Equal(t, "174379", pushed.BusinessShortCode)
	require.Equal(t, "174379", pushed.PartyB)
	require.Equal(t, "254712345678", pushed.PartyA)
	require.Equal(t, "254712345678", pushed.PhoneNumber)
	require.Equal(t, "CustomerPayBillOnline", pushed.TransactionType)
	require.Equal(t, "User Payment", pushed.AccountReference)
	require.Equal(t, "Payment for services", pushed.TransactionDesc)
	require.Equal(t, json.Number("100"), pushed.Amount)

	// Password is base64(shortcode + passkey + timestamp) for the
	// timestamp carried in the same payload.
	decoded, err := base64.StdEncoding.DecodeString(pushed.Password)
	require.NoError(t, err)
	require.Equal(t, "174379"+"test-passkey"+pushed.Timestamp, string(decoded))
	require.Len(t, pushed.Timestamp, 14)
}

func TestSTKPush_GatewayDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-abc"})
			return
		}
		// Daraja reports some declines with a 2xx body and a non-zero code.
		_ = json.NewEncoder(w).Encode(STKPushResponse{
			ResponseCode:        "1032",
			ResponseDescription: "Request cancelled by user",
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	resp, err := c.STKPush(context.Background(), STKPushParams{Amount: "50", PhoneNumber: "254712345678"})
	require.NoError(t, err)
	require.False(t, resp.Accepted())
	require.Equal(t, "1032", resp.ResponseCode)
}

func TestSTKPush_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-abc"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(STKPushResponse{
			RequestID:    "16813-15-1",
			ErrorCode:    "500.001.1001",
			ErrorMessage: "Unable to lock subscriber, a transaction is already in process",
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.STKPush(context.Background(), STKPushParams{Amount: "50", PhoneNumber: "254712345678"})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "Unable to lock subscriber"))
}

func TestSTKPush_TokenFailureSkipsPush(t *testing.T) {
	var pushCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		pushCalls++
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.STKPush(context.Background(), STKPushParams{Amount: "50", PhoneNumber: "254712345678"})
	require.ErrorIs(t, err, ErrTokenFailed)
	require.Zero(t, pushCalls)
}
