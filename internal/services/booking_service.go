package services

import (
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// BookingService menangani jalur booking non-pembayaran (PENDING) dan
// operasi milik user: list, detail, cancel.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
}

// CreatePending stores a booking that has not gone through the gateway.
// Amount integrity is not enforced on this path; rows start PENDING and are
// never linked to a payment.
func (s BookingService) CreatePending(auth domain.AuthContext, intent models.BookingIntent) (models.Booking, error) {
	if err := intent.Validate(); err != nil {
		return models.Booking{}, domain.ValidationError{Field: "intent", Msg: err.Error()}
	}
	if auth.UserID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "user", Msg: "user tidak dikenal"}
	}

	booking := models.Booking{
		UserID:      int64(auth.UserID),
		Kind:        intent.Kind,
		TargetID:    intent.TargetID,
		CheckIn:     intent.CheckIn,
		CheckOut:    intent.CheckOut,
		VisitDate:   intent.VisitDate,
		Guests:      intent.Guests,
		Rooms:       intent.Rooms,
		TotalAmount: intent.TotalAmount,
		Status:      models.BookingPending,
	}

	created, err := s.BookingRepo.Create(booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal menyimpan booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create_pending", "booking_id dibuat untuk user "+intent.Customer.Email)
	return created, nil
}

// ListMine returns the caller's bookings.
func (s BookingService) ListMine(auth domain.AuthContext) ([]models.Booking, error) {
	if auth.UserID <= 0 {
		return nil, domain.ValidationError{Field: "user", Msg: "user tidak dikenal"}
	}
	return s.BookingRepo.ListByUser(int64(auth.UserID))
}

// Detail returns one booking plus its payment when present. Non-admin callers
// only see their own bookings.
func (s BookingService) Detail(auth domain.AuthContext, id int64) (models.Booking, models.Payment, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	if booking.UserID != int64(auth.UserID) && !auth.IsAdmin() {
		return models.Booking{}, models.Payment{}, domain.NotFoundError{Resource: "booking"}
	}

	payment, err := s.PaymentRepo.GetByBookingID(id)
	if err != nil {
		return models.Booking{}, models.Payment{}, domain.InternalError{Msg: "gagal membaca pembayaran", Err: err}
	}
	return booking, payment, nil
}

// Cancel moves an owned booking to CANCELLED. Completed bookings stay put.
func (s BookingService) Cancel(auth domain.AuthContext, id int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != int64(auth.UserID) && !auth.IsAdmin() {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}

	switch booking.Status {
	case models.BookingCancelled:
		return booking, nil
	case models.BookingCompleted:
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "booking sudah selesai"}
	}

	if err := s.BookingRepo.UpdateStatus(id, models.BookingCancelled); err != nil {
		return models.Booking{}, err
	}
	booking.Status = models.BookingCancelled
	utils.LogEvent(s.RequestID, "booking", "cancel", "booking dibatalkan")
	return booking, nil
}
