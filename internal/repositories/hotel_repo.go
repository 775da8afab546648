package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type HotelRepository struct {
	DB *sql.DB
}

func (r HotelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const hotelColumns = `id, COALESCE(destination_id,0), COALESCE(name,''), COALESCE(address,''), COALESCE(price_per_night,0), COALESCE(rooms_total,0), COALESCE(description,'')`

func scanHotel(row interface{ Scan(dest ...any) error }) (models.Hotel, error) {
	var h models.Hotel
	err := row.Scan(&h.ID, &h.DestinationID, &h.Name, &h.Address, &h.PricePerNight, &h.RoomsTotal, &h.Description)
	return h, err
}

// List returns hotels, optionally filtered by destination.
func (r HotelRepository) List(destinationID int64) ([]models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels`
	args := []any{}
	if destinationID > 0 {
		query += ` WHERE destination_id=?`
		args = append(args, destinationID)
	}
	query += ` ORDER BY name`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r HotelRepository) GetByID(id int64) (models.Hotel, error) {
	if id <= 0 {
		return models.Hotel{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	row := r.db().QueryRow(`SELECT `+hotelColumns+` FROM hotels WHERE id=? LIMIT 1`, id)
	h, err := scanHotel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, err
	}
	return h, nil
}

func (r HotelRepository) Create(h models.Hotel) (models.Hotel, error) {
	if strings.TrimSpace(h.Name) == "" {
		return models.Hotel{}, domain.ValidationError{Field: "name", Msg: "nama wajib diisi"}
	}
	if h.DestinationID <= 0 {
		return models.Hotel{}, domain.ValidationError{Field: "destination_id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`INSERT INTO hotels (destination_id, name, address, price_per_night, rooms_total, description) VALUES (?,?,?,?,?,?)`,
		h.DestinationID, h.Name, h.Address, h.PricePerNight, h.RoomsTotal, h.Description)
	if err != nil {
		return models.Hotel{}, err
	}
	h.ID, err = res.LastInsertId()
	return h, err
}

func (r HotelRepository) Update(id int64, h models.Hotel) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`UPDATE hotels SET destination_id=?, name=?, address=?, price_per_night=?, rooms_total=?, description=? WHERE id=?`,
		h.DestinationID, h.Name, h.Address, h.PricePerNight, h.RoomsTotal, h.Description, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "hotel"}
	}
	return nil
}

func (r HotelRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM hotels WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "hotel"}
	}
	return nil
}
