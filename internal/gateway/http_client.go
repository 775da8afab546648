package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient talks to the hosted gateway REST API with a bearer secret key.
type HTTPClient struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewHTTPClient(baseURL, secretKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

type initializePayload struct {
	Reference   string          `json:"reference"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Email       string          `json:"email"`
	CallbackURL string          `json:"callback_url"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

type gatewayEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status   string          `json:"status"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Channel  string          `json:"channel"`
	PaidAt   string          `json:"paid_at"`
	Metadata json.RawMessage `json:"metadata"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// Initialize creates a transaction on the gateway and returns the redirect URL.
func (c *HTTPClient) Initialize(ctx context.Context, req InitializeRequest) (InitializeResult, error) {
	body, err := json.Marshal(initializePayload{
		Reference:   req.Reference,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Email:       req.Email,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return InitializeResult{}, err
	}

	env, err := c.post(ctx, "/transaction/initialize", body)
	if err != nil {
		return InitializeResult{}, err
	}
	if !env.Status {
		return InitializeResult{}, fmt.Errorf("inisialisasi ditolak gateway: %s", env.Message)
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return InitializeResult{}, fmt.Errorf("response inisialisasi tidak valid: %w", err)
	}
	if data.AuthorizationURL == "" {
		return InitializeResult{}, fmt.Errorf("gateway tidak mengembalikan authorization_url")
	}

	return InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify queries the authoritative transaction status for a reference.
func (c *HTTPClient) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	raw, env, err := c.get(ctx, "/transaction/verify/"+url.PathEscape(reference))
	if err != nil {
		return VerifyResult{}, err
	}
	if !env.Status {
		return VerifyResult{}, fmt.Errorf("verifikasi ditolak gateway: %s", env.Message)
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return VerifyResult{}, fmt.Errorf("response verifikasi tidak valid: %w", err)
	}

	return VerifyResult{
		Status:        data.Status,
		AmountMinor:   data.Amount,
		Currency:      data.Currency,
		Channel:       data.Channel,
		PaidAt:        data.PaidAt,
		CustomerEmail: data.Customer.Email,
		Metadata:      data.Metadata,
		Raw:           raw,
	}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body []byte) (gatewayEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return gatewayEnvelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	_, env, err := c.do(req)
	return env, err
}

func (c *HTTPClient) get(ctx context.Context, path string) (json.RawMessage, gatewayEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, gatewayEnvelope{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (json.RawMessage, gatewayEnvelope, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, gatewayEnvelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, gatewayEnvelope{}, err
	}

	var env gatewayEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, gatewayEnvelope{}, fmt.Errorf("response gateway tidak valid (HTTP %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return nil, gatewayEnvelope{}, fmt.Errorf("gateway error HTTP %d: %s", resp.StatusCode, env.Message)
	}
	return raw, env, nil
}
