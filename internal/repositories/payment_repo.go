package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id,
	COALESCE(booking_id,0),
	COALESCE(amount,0),
	COALESCE(currency,''),
	COALESCE(method,''),
	COALESCE(transaction_reference,''),
	COALESCE(status,''),
	COALESCE(paid_at,''),
	COALESCE(raw_payload,''),
	COALESCE(created_at,'')`

func scanPayment(row interface{ Scan(dest ...any) error }) (models.Payment, error) {
	var p models.Payment
	var raw string
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.TransactionReference,
		&p.Status,
		&p.PaidAt,
		&raw,
		&p.CreatedAt,
	)
	if raw != "" {
		p.RawPayload = []byte(raw)
	}
	return p, err
}

// GetByReference looks up a payment by its transaction reference.
// Missing reference returns a zero payment without error.
func (r PaymentRepository) GetByReference(reference string) (models.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return models.Payment{}, domain.ValidationError{Field: "reference", Msg: "referensi kosong"}
	}

	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE transaction_reference=? LIMIT 1`, reference)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, nil
		}
		return models.Payment{}, err
	}
	return p, nil
}

// GetByBookingID returns the payment attached to a booking (1:1).
func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? LIMIT 1`, bookingID)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, nil
		}
		return models.Payment{}, err
	}
	return p, nil
}

// CreateBookingAndPayment inserts the booking and its payment in one
// transaction. The UNIQUE KEY on transaction_reference is the actual
// idempotency mechanism: the loser of a concurrent duplicate gets a
// ConflictError and is expected to re-read the winner's rows.
func (r PaymentRepository) CreateBookingAndPayment(b models.Booking, p models.Payment) (models.Booking, models.Payment, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, models.Payment{}, fmt.Errorf("db tidak tersedia")
	}
	if err := r.EnsureTables(); err != nil {
		return models.Booking{}, models.Payment{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO bookings (user_id, kind, target_id, check_in, check_out, visit_date, guests, rooms, total_amount, status)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.UserID,
		b.Kind,
		b.TargetID,
		intdb.NullIfEmpty(b.CheckIn),
		intdb.NullIfEmpty(b.CheckOut),
		intdb.NullIfEmpty(b.VisitDate),
		b.Guests,
		b.Rooms,
		b.TotalAmount,
		b.Status,
	)
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}

	res, err = tx.Exec(`
		INSERT INTO payments (booking_id, amount, currency, method, transaction_reference, status, paid_at, raw_payload)
		VALUES (?,?,?,?,?,?,?,?)`,
		bookingID,
		p.Amount,
		p.Currency,
		p.Method,
		p.TransactionReference,
		p.Status,
		intdb.NullIfEmpty(p.PaidAt),
		string(p.RawPayload),
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.Booking{}, models.Payment{}, domain.ConflictError{
				Resource: "payment",
				Msg:      "referensi " + p.TransactionReference + " sudah tercatat",
				Err:      err,
			}
		}
		return models.Booking{}, models.Payment{}, err
	}
	paymentID, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateEntry(err) {
			return models.Booking{}, models.Payment{}, domain.ConflictError{
				Resource: "payment",
				Msg:      "referensi " + p.TransactionReference + " sudah tercatat",
				Err:      err,
			}
		}
		return models.Booking{}, models.Payment{}, err
	}

	b.ID = bookingID
	p.ID = paymentID
	p.BookingID = bookingID
	return b, p, nil
}

// EnsureTables creates bookings and payments tables when missing.
// The UNIQUE KEY on transaction_reference lives here.
func (r PaymentRepository) EnsureTables() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}

	if err := (BookingRepository{DB: db}).EnsureTable(); err != nil {
		return err
	}

	if intdb.HasTable(db, "payments") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	amount DECIMAL(12,2) NOT NULL DEFAULT 0,
	currency VARCHAR(8) NOT NULL DEFAULT '',
	method VARCHAR(32) NOT NULL DEFAULT '',
	transaction_reference VARCHAR(100) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT '',
	paid_at VARCHAR(40) NULL,
	raw_payload LONGTEXT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_reference (transaction_reference),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
