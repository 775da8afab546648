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
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id,
	COALESCE(user_id,0),
	COALESCE(kind,''),
	COALESCE(target_id,0),
	COALESCE(check_in,''),
	COALESCE(check_out,''),
	COALESCE(visit_date,''),
	COALESCE(guests,0),
	COALESCE(rooms,0),
	COALESCE(total_amount,0),
	COALESCE(status,''),
	COALESCE(created_at,'')`

func scanBooking(row interface{ Scan(dest ...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Kind,
		&b.TargetID,
		&b.CheckIn,
		&b.CheckOut,
		&b.VisitDate,
		&b.Guests,
		&b.Rooms,
		&b.TotalAmount,
		&b.Status,
		&b.CreatedAt,
	)
	return b, err
}

// GetByID fetches one booking by primary key.
func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}

	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ListByUser returns all bookings owned by a user, newest first.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "id tidak valid"}
	}

	rows, err := r.db().Query(`SELECT `+bookingColumns+` FROM bookings WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a booking outside the payment path (status PENDING unless set).
func (r BookingRepository) Create(b models.Booking) (models.Booking, error) {
	if err := r.EnsureTable(); err != nil {
		return models.Booking{}, err
	}

	status := strings.TrimSpace(b.Status)
	if status == "" {
		status = models.BookingPending
	}

	res, err := r.db().Exec(`
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
		status,
	)
	if err != nil {
		return models.Booking{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id
	b.Status = status
	return b, nil
}

// UpdateStatus moves a booking to a new status.
func (r BookingRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	status = strings.TrimSpace(status)
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
	default:
		return domain.ValidationError{Field: "status", Msg: fmt.Sprintf("status tidak dikenal: %s", status)}
	}

	res, err := r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// EnsureTable creates the bookings table when it does not exist yet.
func (r BookingRepository) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	if intdb.HasTable(db, "bookings") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	kind VARCHAR(32) NOT NULL,
	target_id BIGINT NOT NULL,
	check_in VARCHAR(10) NULL,
	check_out VARCHAR(10) NULL,
	visit_date VARCHAR(10) NULL,
	guests INT NOT NULL DEFAULT 1,
	rooms INT NOT NULL DEFAULT 0,
	total_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
