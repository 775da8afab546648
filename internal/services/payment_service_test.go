package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/gateway"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

type stubGateway struct {
	initCalls   int
	verifyCalls int
	lastInit    gateway.InitializeRequest

	initFn   func(gateway.InitializeRequest) (gateway.InitializeResult, error)
	verifyFn func(string) (gateway.VerifyResult, error)
}

func (g *stubGateway) Initialize(_ context.Context, req gateway.InitializeRequest) (gateway.InitializeResult, error) {
	g.initCalls++
	g.lastInit = req
	if g.initFn != nil {
		return g.initFn(req)
	}
	return gateway.InitializeResult{AuthorizationURL: "https://gateway.test/pay/abc", AccessCode: "abc", Reference: req.Reference}, nil
}

func (g *stubGateway) Verify(_ context.Context, reference string) (gateway.VerifyResult, error) {
	g.verifyCalls++
	if g.verifyFn != nil {
		return g.verifyFn(reference)
	}
	return gateway.VerifyResult{}, fmt.Errorf("verify tidak di-stub")
}

func hotelIntent() models.BookingIntent {
	return models.BookingIntent{
		Kind:        models.KindHotelStay,
		TargetID:    1,
		CheckIn:     "2024-12-15",
		CheckOut:    "2024-12-18",
		Guests:      2,
		Rooms:       1,
		TotalAmount: 540.00,
		Customer: models.Customer{
			Name:  "Budi",
			Phone: "0812000111",
			Email: "budi@example.com",
		},
	}
}

func paymentSvc(g gateway.Client) PaymentService {
	return PaymentService{
		Gateway:      g,
		CallbackURL:  "http://localhost:3000/payment/callback",
		Currency:     "IDR",
		NewReference: func() string { return "R1" },
	}
}

func TestInitiateReturnsRedirectAndReference(t *testing.T) {
	stub := &stubGateway{}
	svc := paymentSvc(stub)

	res, err := svc.Initiate(context.Background(), domain.AuthContext{UserID: 7}, hotelIntent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reference != "R1" {
		t.Fatalf("reference = %q, want R1", res.Reference)
	}
	if res.RedirectURL != "https://gateway.test/pay/abc" {
		t.Fatalf("redirect = %q", res.RedirectURL)
	}
	if stub.initCalls != 1 {
		t.Fatalf("init calls = %d, want 1", stub.initCalls)
	}

	// amount reaches the gateway in minor units
	if stub.lastInit.AmountMinor != 54000 {
		t.Fatalf("amount minor = %d, want 54000", stub.lastInit.AmountMinor)
	}
	if stub.lastInit.Email != "budi@example.com" {
		t.Fatalf("email = %q", stub.lastInit.Email)
	}

	// metadata round-trips the full intent, stamped with the user id
	decoded, err := models.DecodeIntentMetadata(stub.lastInit.Metadata)
	if err != nil {
		t.Fatalf("metadata decode: %v", err)
	}
	if decoded.UserID != 7 || decoded.Kind != models.KindHotelStay || decoded.TotalAmount != 540.00 {
		t.Fatalf("metadata intent mismatch: %+v", decoded)
	}
}

func TestInitiateValidationMakesNoGatewayCall(t *testing.T) {
	cases := map[string]func(*models.BookingIntent){
		"negative amount": func(in *models.BookingIntent) { in.TotalAmount = -1 },
		"zero amount":     func(in *models.BookingIntent) { in.TotalAmount = 0 },
		"missing email":   func(in *models.BookingIntent) { in.Customer.Email = "" },
		"missing name":    func(in *models.BookingIntent) { in.Customer.Name = "" },
		"inverted dates":  func(in *models.BookingIntent) { in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn },
		"unknown kind":    func(in *models.BookingIntent) { in.Kind = "CRUISE" },
	}

	for name, mutate := range cases {
		stub := &stubGateway{}
		svc := paymentSvc(stub)

		intent := hotelIntent()
		mutate(&intent)

		_, err := svc.Initiate(context.Background(), domain.AuthContext{UserID: 7}, intent)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if stub.initCalls != 0 {
			t.Fatalf("%s: gateway called %d times, want 0", name, stub.initCalls)
		}
	}
}

func TestInitiateGatewayFailurePropagates(t *testing.T) {
	stub := &stubGateway{
		initFn: func(gateway.InitializeRequest) (gateway.InitializeResult, error) {
			return gateway.InitializeResult{}, fmt.Errorf("inisialisasi ditolak gateway: saldo merchant bermasalah")
		},
	}
	svc := paymentSvc(stub)

	_, err := svc.Initiate(context.Background(), domain.AuthContext{UserID: 7}, hotelIntent())
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func successVerify(t *testing.T, intent models.BookingIntent) gateway.VerifyResult {
	t.Helper()
	meta, err := models.EncodeIntentMetadata(intent)
	if err != nil {
		t.Fatalf("encode metadata: %v", err)
	}
	return gateway.VerifyResult{
		Status:      "success",
		AmountMinor: 54000,
		Currency:    "IDR",
		Channel:     "card",
		PaidAt:      "2024-12-10 09:30:00",
		Metadata:    meta,
		Raw:         []byte(`{"status":true,"data":{"status":"success","amount":54000}}`),
	}
}

func expectEnsureTables(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("payments").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("payments"))
}

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "currency", "method",
		"transaction_reference", "status", "paid_at", "raw_payload", "created_at",
	})
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "kind", "target_id", "check_in", "check_out",
		"visit_date", "guests", "rooms", "total_amount", "status", "created_at",
	})
}

func TestReconcileRecordsBookingWithGatewayAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	intent := hotelIntent()
	intent.UserID = 7
	// client claims a smaller total; the gateway-verified amount must win
	intent.TotalAmount = 1.00

	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R1").
		WillReturnError(sql.ErrNoRows)
	expectEnsureTables(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(7), models.KindHotelStay, int64(1), "2024-12-15", "2024-12-18", nil, 2, 1, 540.00, models.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return successVerify(t, intent), nil
	}}
	svc := paymentSvc(stub)

	res, err := svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyRecorded {
		t.Fatalf("fresh reference reported as already recorded")
	}
	if res.Booking.ID != 31 || res.Payment.ID != 12 {
		t.Fatalf("ids = booking %d payment %d", res.Booking.ID, res.Payment.ID)
	}
	if res.Booking.Status != models.BookingConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", res.Booking.Status)
	}
	if res.Booking.TotalAmount != 540.00 || res.Payment.Amount != 540.00 {
		t.Fatalf("amounts booking=%v payment=%v, want 540.00", res.Booking.TotalAmount, res.Payment.Amount)
	}
	if res.Payment.TransactionReference != "R1" || res.Payment.Method != "card" {
		t.Fatalf("payment = %+v", res.Payment)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileSecondCallReturnsExistingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R1").
		WillReturnRows(paymentRows().AddRow(12, 31, 540.00, "IDR", "card", "R1", "success", "2024-12-10 09:30:00", "{}", "2024-12-10 09:30:05"))
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(31)).
		WillReturnRows(bookingRows().AddRow(31, 7, models.KindHotelStay, 1, "2024-12-15", "2024-12-18", "", 2, 1, 540.00, models.BookingConfirmed, "2024-12-10 09:30:05"))

	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return successVerify(t, hotelIntent()), nil
	}}
	svc := paymentSvc(stub)

	res, err := svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyRecorded {
		t.Fatalf("duplicate reconcile not flagged as already recorded")
	}
	if res.Booking.ID != 31 || res.Payment.ID != 12 {
		t.Fatalf("ids = booking %d payment %d, want 31/12", res.Booking.ID, res.Payment.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileDuplicateInsertRaceReturnsWinner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	// existence check ran before the twin callback committed
	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R1").
		WillReturnError(sql.ErrNoRows)
	expectEnsureTables(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(32, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'R1' for key 'uniq_reference'"})
	mock.ExpectRollback()

	// loser re-reads the winner's rows
	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R1").
		WillReturnRows(paymentRows().AddRow(12, 31, 540.00, "IDR", "card", "R1", "success", "2024-12-10 09:30:00", "{}", "2024-12-10 09:30:05"))
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(31)).
		WillReturnRows(bookingRows().AddRow(31, 7, models.KindHotelStay, 1, "2024-12-15", "2024-12-18", "", 2, 1, 540.00, models.BookingConfirmed, "2024-12-10 09:30:05"))

	intent := hotelIntent()
	intent.UserID = 7
	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return successVerify(t, intent), nil
	}}
	svc := paymentSvc(stub)

	res, err := svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if err != nil {
		t.Fatalf("race loser should not surface an error, got %v", err)
	}
	if !res.AlreadyRecorded {
		t.Fatalf("race loser should report already recorded")
	}
	if res.Booking.ID != 31 || res.Payment.ID != 12 {
		t.Fatalf("ids = booking %d payment %d, want winner 31/12", res.Booking.ID, res.Payment.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileFailedTransactionCreatesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return gateway.VerifyResult{Status: "abandoned"}, nil
	}}
	svc := paymentSvc(stub)

	_, err = svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if !domain.IsPaymentNotSuccessful(err) {
		t.Fatalf("expected payment-not-successful, got %v", err)
	}
	if stub.verifyCalls != 1 {
		t.Fatalf("verify calls = %d, want 1", stub.verifyCalls)
	}

	// no expectations were registered; any DB touch would have failed the mock
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage touched for failed transaction: %v", err)
	}
}

func TestReconcileEmptyReferenceSkipsGateway(t *testing.T) {
	stub := &stubGateway{}
	svc := paymentSvc(stub)

	_, err := svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "   ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.verifyCalls != 0 {
		t.Fatalf("verify calls = %d, want 0", stub.verifyCalls)
	}
}

func TestReconcileCorruptMetadata(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R1").
		WillReturnError(sql.ErrNoRows)

	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return gateway.VerifyResult{
			Status:      "success",
			AmountMinor: 54000,
			Metadata:    []byte(`{"v":99,"intent":{}}`),
		}, nil
	}}
	svc := paymentSvc(stub)

	_, err = svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if !domain.IsCorruptReference(err) {
		t.Fatalf("expected corrupt-reference error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected storage writes: %v", err)
	}
}

func TestReconcileGatewayDownIsRetryable(t *testing.T) {
	stub := &stubGateway{verifyFn: func(string) (gateway.VerifyResult, error) {
		return gateway.VerifyResult{}, fmt.Errorf("timeout menghubungi gateway")
	}}
	svc := paymentSvc(stub)

	_, err := svc.Reconcile(context.Background(), domain.AuthContext{UserID: 7}, "R1")
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}
