package repositories

import (
	"database/sql"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func confirmedBooking() models.Booking {
	return models.Booking{
		UserID:      7,
		Kind:        models.KindHotelStay,
		TargetID:    1,
		CheckIn:     "2024-12-15",
		CheckOut:    "2024-12-18",
		Guests:      2,
		Rooms:       1,
		TotalAmount: 540.00,
		Status:      models.BookingConfirmed,
	}
}

func verifiedPayment() models.Payment {
	return models.Payment{
		Amount:               540.00,
		Currency:             "IDR",
		Method:               "card",
		TransactionReference: "R1",
		Status:               "success",
		PaidAt:               "2024-12-10 09:30:00",
		RawPayload:           []byte(`{}`),
	}
}

func expectTablesPresent(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("payments").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("payments"))
}

func TestCreateBookingAndPaymentCommitsBothRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectTablesPresent(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	repo := PaymentRepository{DB: db}
	b, p, err := repo.CreateBookingAndPayment(confirmedBooking(), verifiedPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 31 || p.ID != 12 || p.BookingID != 31 {
		t.Fatalf("ids: booking=%d payment=%d payment.booking=%d", b.ID, p.ID, p.BookingID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingAndPaymentDuplicateReferenceIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectTablesPresent(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(32, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'R1' for key 'uniq_reference'"})
	mock.ExpectRollback()

	repo := PaymentRepository{DB: db}
	_, _, err = repo.CreateBookingAndPayment(confirmedBooking(), verifiedPayment())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingAndPaymentCreatesTablesWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("payments").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS payments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := PaymentRepository{DB: db}
	if _, _, err := repo.CreateBookingAndPayment(confirmedBooking(), verifiedPayment()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByReferenceMissingRowIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments WHERE transaction_reference").WithArgs("R404").
		WillReturnError(sql.ErrNoRows)

	repo := PaymentRepository{DB: db}
	p, err := repo.GetByReference("R404")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 0 {
		t.Fatalf("expected zero payment, got %+v", p)
	}
}

func TestGetByReferenceEmptyReferenceRejected(t *testing.T) {
	repo := PaymentRepository{}
	_, err := repo.GetByReference("  ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
