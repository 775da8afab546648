package gateway

import (
	"context"
	"encoding/json"
	"strings"
)

// InitializeRequest is one transaction-initialization call to the gateway.
// Metadata is opaque to the gateway and echoed back verbatim on verify.
type InitializeRequest struct {
	Reference   string
	AmountMinor int64
	Currency    string
	Email       string
	CallbackURL string
	Metadata    json.RawMessage
}

// InitializeResult is the redirect target returned by the gateway.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the gateway's authoritative view of one transaction.
// Raw keeps the full verification payload for audit/dispute.
type VerifyResult struct {
	Status        string
	AmountMinor   int64
	Currency      string
	Channel       string
	PaidAt        string
	CustomerEmail string
	Metadata      json.RawMessage
	Raw           json.RawMessage
}

// IsSuccess reports whether the gateway considers the transaction paid.
func (v VerifyResult) IsSuccess() bool {
	return strings.EqualFold(strings.TrimSpace(v.Status), "success")
}

// Client is the adapter contract for the external payment gateway.
type Client interface {
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResult, error)
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}
