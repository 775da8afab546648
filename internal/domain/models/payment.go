package models

import "encoding/json"

// Payment is the persisted record of one verified gateway transaction.
// TransactionReference is unique: satu referensi satu pembayaran.
type Payment struct {
	ID                   int64           `json:"id"`
	BookingID            int64           `json:"booking_id"`
	Amount               float64         `json:"amount"`
	Currency             string          `json:"currency"`
	Method               string          `json:"method"`
	TransactionReference string          `json:"transaction_reference"`
	Status               string          `json:"status"`
	PaidAt               string          `json:"paid_at,omitempty"`
	RawPayload           json.RawMessage `json:"-"`
	CreatedAt            string          `json:"created_at,omitempty"`
}
