// Package mpesa provides a lightweight Safaricom Daraja API client.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// SandboxBaseURL is the Daraja sandbox host. A production deployment
// points BaseURL at api.safaricom.co.ke instead.
const SandboxBaseURL = "https://sandbox.safaricom.co.ke"

// STKPushParams carries the per-request inputs for an STK push.
// PhoneNumber must already be in international 254... format.
type STKPushParams struct {
	Amount      json.Number
	PhoneNumber string
}

// STKPushResponse is the Daraja response to a push request.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID,omitempty"`
	CheckoutRequestID   string `json:"CheckoutRequestID,omitempty"`
	ResponseCode        string `json:"ResponseCode,omitempty"`
	ResponseDescription string `json:"ResponseDescription,omitempty"`
	CustomerMessage     string `json:"CustomerMessage,omitempty"`
	RequestID           string `json:"requestId,omitempty"`
	ErrorCode           string `json:"errorCode,omitempty"`
	ErrorMessage        string `json:"errorMessage,omitempty"`
}

// Accepted reports whether the gateway accepted the push for processing.
// ResponseCode "0" means the prompt was dispatched to the handset; the
// asynchronous callback reports the eventual outcome.
func (r *STKPushResponse) Accepted() bool {
	return r.ResponseCode == "0"
}

// Client is the Daraja API client interface.
type Client interface {
	// AccessToken exchanges the configured consumer credentials for a
	// short-lived bearer token. Fetched fresh on every push, no caching.
	AccessToken(ctx context.Context) (string, error)
	// STKPush initiates a payment prompt on the customer's handset and
	// returns the gateway's synchronous acknowledgment.
	STKPush(ctx context.Context, params STKPushParams) (*STKPushResponse, error)
}

// Config holds the merchant credentials issued by the Daraja portal.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Passkey        string
	ShortCode      string
	CallbackURL    string
}

// RealClient is the raw-HTTP Client implementation.
type RealClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a RealClient. An empty BaseURL defaults to the sandbox.
func NewClient(cfg Config) *RealClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = SandboxBaseURL
	}
	return &RealClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// ErrNotConfigured is returned when the consumer credentials are absent.
var ErrNotConfigured = errors.New("mpesa: not configured")

// ErrTokenFailed is the single error surfaced for any token-exchange
// failure. The upstream detail is logged, never returned to callers.
var ErrTokenFailed = errors.New("failed to obtain access token")

// AccessToken performs the Basic-Auth OAuth exchange against
// /oauth/v1/generate and extracts access_token from the response.
func (c *RealClient) AccessToken(ctx context.Context) (string, error) {
	if c.cfg.ConsumerKey == "" || c.cfg.ConsumerSecret == "" {
		return "", ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("mpesa token request failed", "error", err)
		return "", ErrTokenFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("mpesa token request rejected", "status", resp.StatusCode, "body", string(body))
		return "", ErrTokenFailed
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Error("mpesa token response decode failed", "error", err)
		return "", ErrTokenFailed
	}
	if result.AccessToken == "" {
		slog.Error("mpesa token response missing access_token")
		return "", ErrTokenFailed
	}
	return result.AccessToken, nil
}

// stkPushPayload is the wire shape of the Daraja processrequest call.
type stkPushPayload struct {
	BusinessShortCode string      `json:"BusinessShortCode"`
	Password          string      `json:"Password"`
	Timestamp         string      `json:"Timestamp"`
	TransactionType   string      `json:"TransactionType"`
	Amount            json.Number `json:"Amount"`
	PartyA            string      `json:"PartyA"`
	PartyB            string      `json:"PartyB"`
	PhoneNumber       string      `json:"PhoneNumber"`
	CallBackURL       string      `json:"CallBackURL"`
	AccountReference  string      `json:"AccountReference"`
	TransactionDesc   string      `json:"TransactionDesc"`
}

// STKPush fetches a fresh token, signs the request with the shortcode
// password for the current timestamp and posts it to the push endpoint.
// A gateway rejection carried in a 2xx body is returned as a response
// with a non-zero ResponseCode, not as an error.
func (c *RealClient) STKPush(ctx context.Context, params STKPushParams) (*STKPushResponse, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.ShortCode + c.cfg.Passkey + timestamp))

	payload := stkPushPayload{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            params.Amount,
		PartyA:            params.PhoneNumber,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       params.PhoneNumber,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  "User Payment",
		TransactionDesc:   "Payment for services",
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest",
		bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		if result.ErrorMessage != "" {
			return nil, fmt.Errorf("mpesa stk push: %s", result.ErrorMessage)
		}
		return nil, fmt.Errorf("mpesa stk push: gateway returned status %d", resp.StatusCode)
	}
	return &result, nil
}
