package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// intentVersion is bumped whenever the metadata wire shape changes.
// Verify echoes the blob back verbatim, so decode must reject anything
// it does not recognize instead of guessing fields.
const intentVersion = 1

// Customer is the contact detail the gateway requires at initialization.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// BookingIntent describes the booking to create if payment succeeds.
// It is never persisted locally; it only lives inside the gateway metadata.
type BookingIntent struct {
	Kind        string   `json:"kind"`
	TargetID    int64    `json:"target_id"`
	CheckIn     string   `json:"check_in,omitempty"`
	CheckOut    string   `json:"check_out,omitempty"`
	VisitDate   string   `json:"visit_date,omitempty"`
	Guests      int      `json:"guests"`
	Rooms       int      `json:"rooms,omitempty"`
	TotalAmount float64  `json:"total_amount"`
	Customer    Customer `json:"customer"`
	UserID      int64    `json:"user_id,omitempty"`
}

type intentEnvelope struct {
	Version int           `json:"v"`
	Intent  BookingIntent `json:"intent"`
}

// Validate checks initiation preconditions. Gagal validasi berarti tidak ada
// panggilan gateway sama sekali.
func (in BookingIntent) Validate() error {
	if !IsValidKind(in.Kind) {
		return fmt.Errorf("kind tidak dikenal: %q", in.Kind)
	}
	if in.TargetID <= 0 {
		return fmt.Errorf("target_id tidak valid")
	}
	if in.TotalAmount <= 0 {
		return fmt.Errorf("total_amount harus lebih dari 0")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		return fmt.Errorf("nama customer wajib diisi")
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		return fmt.Errorf("no hp customer wajib diisi")
	}
	if strings.TrimSpace(in.Customer.Email) == "" {
		return fmt.Errorf("email customer wajib diisi")
	}

	switch in.Kind {
	case KindHotelStay:
		if in.CheckIn == "" || in.CheckOut == "" {
			return fmt.Errorf("tanggal check_in/check_out wajib diisi")
		}
		if in.CheckOut <= in.CheckIn {
			return fmt.Errorf("check_out harus setelah check_in")
		}
		if in.Guests <= 0 || in.Rooms <= 0 {
			return fmt.Errorf("jumlah tamu/kamar tidak valid")
		}
	case KindAttractionVisit:
		if in.VisitDate == "" {
			return fmt.Errorf("visit_date wajib diisi")
		}
		if in.Guests <= 0 {
			return fmt.Errorf("jumlah pengunjung tidak valid")
		}
	}
	return nil
}

// EncodeIntentMetadata wraps the intent in a versioned envelope for the
// gateway's opaque metadata field.
func EncodeIntentMetadata(in BookingIntent) (json.RawMessage, error) {
	return json.Marshal(intentEnvelope{Version: intentVersion, Intent: in})
}

// DecodeIntentMetadata parses metadata echoed back by the gateway.
// Unknown versions or kinds are rejected so a corrupt blob never silently
// books the wrong thing.
func DecodeIntentMetadata(raw json.RawMessage) (BookingIntent, error) {
	if len(raw) == 0 {
		return BookingIntent{}, fmt.Errorf("metadata kosong")
	}

	var env intentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return BookingIntent{}, err
	}
	if env.Version != intentVersion {
		return BookingIntent{}, fmt.Errorf("versi metadata tidak dikenal: %d", env.Version)
	}
	if !IsValidKind(env.Intent.Kind) {
		return BookingIntent{}, fmt.Errorf("kind tidak dikenal: %q", env.Intent.Kind)
	}
	if env.Intent.TargetID <= 0 {
		return BookingIntent{}, fmt.Errorf("target_id tidak valid")
	}
	return env.Intent, nil
}
