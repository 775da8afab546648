package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/gateway"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// PaymentService menangani inisiasi pembayaran ke gateway dan rekonsiliasi
// callback menjadi booking + payment.
type PaymentService struct {
	Gateway     gateway.Client
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository

	CallbackURL string
	Currency    string
	RequestID   string

	// NewReference overrides reference generation in tests.
	NewReference func() string
}

// InitiateResult is returned to the client so it can redirect to the gateway.
type InitiateResult struct {
	RedirectURL string `json:"redirect_url"`
	Reference   string `json:"reference"`
	AccessCode  string `json:"access_code,omitempty"`
}

// ReconcileResult carries the durably recorded pair. AlreadyRecorded is true
// when an earlier reconciliation (or a race winner) created the rows.
type ReconcileResult struct {
	Booking         models.Booking `json:"booking"`
	Payment         models.Payment `json:"payment"`
	AlreadyRecorded bool           `json:"already_recorded"`
}

func (s PaymentService) reference() string {
	if s.NewReference != nil {
		return s.NewReference()
	}
	// timestamp keeps references sortable, uuid suffix keeps them unguessable
	return "TRX-" + utils.NowUTC().Format("20060102150405") + "-" + strings.ToUpper(uuid.NewString()[:12])
}

// Initiate validates the booking intent, registers a transaction at the
// gateway and returns the redirect target. Nothing is persisted locally;
// the full intent rides along in the gateway metadata until verification.
func (s PaymentService) Initiate(ctx context.Context, auth domain.AuthContext, intent models.BookingIntent) (InitiateResult, error) {
	if err := intent.Validate(); err != nil {
		return InitiateResult{}, domain.ValidationError{Field: "intent", Msg: err.Error()}
	}

	intent.UserID = int64(auth.UserID)
	ref := s.reference()

	meta, err := models.EncodeIntentMetadata(intent)
	if err != nil {
		return InitiateResult{}, domain.InternalError{Msg: "gagal encode metadata intent", Err: err}
	}

	callback := s.CallbackURL
	if callback != "" {
		sep := "?"
		if strings.Contains(callback, "?") {
			sep = "&"
		}
		callback += sep + "reference=" + url.QueryEscape(ref)
	}

	res, err := s.Gateway.Initialize(ctx, gateway.InitializeRequest{
		Reference:   ref,
		AmountMinor: utils.ToMinorUnits(intent.TotalAmount),
		Currency:    s.Currency,
		Email:       intent.Customer.Email,
		CallbackURL: callback,
		Metadata:    meta,
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "initiate", "gateway init failed ref="+ref+": "+err.Error())
		return InitiateResult{}, domain.GatewayError{Op: "initialize", Msg: err.Error(), Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "initiate", "ref="+ref+" kind="+intent.Kind)
	return InitiateResult{
		RedirectURL: res.AuthorizationURL,
		Reference:   ref,
		AccessCode:  res.AccessCode,
	}, nil
}

// Reconcile verifies a reference against the gateway and, on success,
// materializes exactly one booking + payment pair for it. Safe to call any
// number of times for the same reference.
func (s PaymentService) Reconcile(ctx context.Context, auth domain.AuthContext, reference string) (ReconcileResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ReconcileResult{}, domain.ValidationError{Field: "reference", Msg: "referensi kosong"}
	}

	// Gateway verify adalah satu-satunya sumber kebenaran status bayar.
	verified, err := s.Gateway.Verify(ctx, reference)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "reconcile", "gateway verify failed ref="+reference+": "+err.Error())
		return ReconcileResult{}, domain.GatewayError{Op: "verify", Msg: err.Error(), Err: err}
	}

	if !verified.IsSuccess() {
		utils.LogEvent(s.RequestID, "payment", "reconcile", "ref="+reference+" status="+verified.Status)
		return ReconcileResult{}, domain.PaymentNotSuccessfulError{Reference: reference, Status: verified.Status}
	}

	// Fast path for duplicate callbacks. The unique key below is what makes
	// this correct under races; the lookup just avoids the failed insert.
	if existing, err := s.PaymentRepo.GetByReference(reference); err != nil {
		return ReconcileResult{}, domain.InternalError{Msg: "gagal cek pembayaran", Err: err}
	} else if existing.ID > 0 {
		return s.existingResult(reference, existing)
	}

	intent, err := models.DecodeIntentMetadata(verified.Metadata)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "corrupt_reference", "ref="+reference+": "+err.Error())
		return ReconcileResult{}, domain.CorruptReferenceError{Reference: reference, Err: err}
	}

	userID := intent.UserID
	if userID <= 0 {
		userID = int64(auth.UserID)
	}

	// Amount selalu dari hasil verifikasi gateway, bukan dari intent/client.
	amount := utils.FromMinorUnits(verified.AmountMinor)

	booking := models.Booking{
		UserID:      userID,
		Kind:        intent.Kind,
		TargetID:    intent.TargetID,
		CheckIn:     intent.CheckIn,
		CheckOut:    intent.CheckOut,
		VisitDate:   intent.VisitDate,
		Guests:      intent.Guests,
		Rooms:       intent.Rooms,
		TotalAmount: amount,
		Status:      models.BookingConfirmed,
	}

	currency := verified.Currency
	if currency == "" {
		currency = s.Currency
	}
	paidAt := verified.PaidAt
	if paidAt == "" {
		paidAt = utils.FormatDateTime(time.Now())
	}
	payment := models.Payment{
		Amount:               amount,
		Currency:             currency,
		Method:               verified.Channel,
		TransactionReference: reference,
		Status:               "success",
		PaidAt:               paidAt,
		RawPayload:           verified.Raw,
	}

	b, p, err := s.PaymentRepo.CreateBookingAndPayment(booking, payment)
	if err != nil {
		if domain.IsConflict(err) {
			// kalah race dengan callback kembar; baca ulang pemenangnya
			utils.LogEvent(s.RequestID, "payment", "reconcile", "ref="+reference+" duplicate insert, re-reading winner")
			winner, rerr := s.PaymentRepo.GetByReference(reference)
			if rerr != nil || winner.ID == 0 {
				return ReconcileResult{}, domain.InternalError{Msg: "gagal membaca pembayaran pemenang race", Err: rerr}
			}
			return s.existingResult(reference, winner)
		}
		return ReconcileResult{}, domain.InternalError{Msg: "gagal menyimpan booking/pembayaran", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "reconcile", "ref="+reference+" booking_id="+strconv.FormatInt(b.ID, 10))
	return ReconcileResult{Booking: b, Payment: p}, nil
}

func (s PaymentService) existingResult(reference string, p models.Payment) (ReconcileResult, error) {
	booking, err := s.BookingRepo.GetByID(p.BookingID)
	if err != nil {
		return ReconcileResult{}, domain.InternalError{Msg: "gagal membaca booking untuk referensi " + reference, Err: err}
	}
	return ReconcileResult{Booking: booking, Payment: p, AlreadyRecorded: true}, nil
}
