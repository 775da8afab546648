package models

// Booking kinds. A booking is either a hotel stay or an attraction visit.
const (
	KindHotelStay       = "HOTEL_STAY"
	KindAttractionVisit = "ATTRACTION_VISIT"
)

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Booking is a persisted reservation. Rows on the payment path are created
// only by the reconciler, already CONFIRMED.
type Booking struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Kind        string  `json:"kind"`
	TargetID    int64   `json:"target_id"`
	CheckIn     string  `json:"check_in,omitempty"`
	CheckOut    string  `json:"check_out,omitempty"`
	VisitDate   string  `json:"visit_date,omitempty"`
	Guests      int     `json:"guests"`
	Rooms       int     `json:"rooms,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// IsValidKind reports whether k is a known booking kind.
func IsValidKind(k string) bool {
	return k == KindHotelStay || k == KindAttractionVisit
}
