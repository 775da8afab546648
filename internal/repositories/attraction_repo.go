package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type AttractionRepository struct {
	DB *sql.DB
}

func (r AttractionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const attractionColumns = `id, COALESCE(destination_id,0), COALESCE(name,''), COALESCE(location,''), COALESCE(entry_fee,0), COALESCE(open_hours,''), COALESCE(description,'')`

func scanAttraction(row interface{ Scan(dest ...any) error }) (models.Attraction, error) {
	var a models.Attraction
	err := row.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Location, &a.EntryFee, &a.OpenHours, &a.Description)
	return a, err
}

// List returns attractions, optionally filtered by destination.
func (r AttractionRepository) List(destinationID int64) ([]models.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions`
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

	out := []models.Attraction{}
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AttractionRepository) GetByID(id int64) (models.Attraction, error) {
	if id <= 0 {
		return models.Attraction{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	row := r.db().QueryRow(`SELECT `+attractionColumns+` FROM attractions WHERE id=? LIMIT 1`, id)
	a, err := scanAttraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attraction{}, domain.NotFoundError{Resource: "attraction", Err: err}
		}
		return models.Attraction{}, err
	}
	return a, nil
}

func (r AttractionRepository) Create(a models.Attraction) (models.Attraction, error) {
	if strings.TrimSpace(a.Name) == "" {
		return models.Attraction{}, domain.ValidationError{Field: "name", Msg: "nama wajib diisi"}
	}
	if a.DestinationID <= 0 {
		return models.Attraction{}, domain.ValidationError{Field: "destination_id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`INSERT INTO attractions (destination_id, name, location, entry_fee, open_hours, description) VALUES (?,?,?,?,?,?)`,
		a.DestinationID, a.Name, a.Location, a.EntryFee, a.OpenHours, a.Description)
	if err != nil {
		return models.Attraction{}, err
	}
	a.ID, err = res.LastInsertId()
	return a, err
}

func (r AttractionRepository) Update(id int64, a models.Attraction) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`UPDATE attractions SET destination_id=?, name=?, location=?, entry_fee=?, open_hours=?, description=? WHERE id=?`,
		a.DestinationID, a.Name, a.Location, a.EntryFee, a.OpenHours, a.Description, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "attraction"}
	}
	return nil
}

func (r AttractionRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM attractions WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "attraction"}
	}
	return nil
}
