package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type DestinationRepository struct {
	DB *sql.DB
}

func (r DestinationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const destinationColumns = `id, COALESCE(name,''), COALESCE(region,''), COALESCE(description,''), COALESCE(image_url,'')`

func scanDestination(row interface{ Scan(dest ...any) error }) (models.Destination, error) {
	var d models.Destination
	err := row.Scan(&d.ID, &d.Name, &d.Region, &d.Description, &d.ImageURL)
	return d, err
}

func (r DestinationRepository) List() ([]models.Destination, error) {
	rows, err := r.db().Query(`SELECT ` + destinationColumns + ` FROM destinations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DestinationRepository) GetByID(id int64) (models.Destination, error) {
	if id <= 0 {
		return models.Destination{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	row := r.db().QueryRow(`SELECT `+destinationColumns+` FROM destinations WHERE id=? LIMIT 1`, id)
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Destination{}, domain.NotFoundError{Resource: "destination", Err: err}
		}
		return models.Destination{}, err
	}
	return d, nil
}

func (r DestinationRepository) Create(d models.Destination) (models.Destination, error) {
	if strings.TrimSpace(d.Name) == "" {
		return models.Destination{}, domain.ValidationError{Field: "name", Msg: "nama wajib diisi"}
	}
	res, err := r.db().Exec(`INSERT INTO destinations (name, region, description, image_url) VALUES (?,?,?,?)`,
		d.Name, d.Region, d.Description, d.ImageURL)
	if err != nil {
		return models.Destination{}, err
	}
	d.ID, err = res.LastInsertId()
	return d, err
}

func (r DestinationRepository) Update(id int64, d models.Destination) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`UPDATE destinations SET name=?, region=?, description=?, image_url=? WHERE id=?`,
		d.Name, d.Region, d.Description, d.ImageURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "destination"}
	}
	return nil
}

func (r DestinationRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM destinations WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "destination"}
	}
	return nil
}
