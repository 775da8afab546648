package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r ReviewRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByHotel returns all reviews for one hotel, newest first.
func (r ReviewRepository) ListByHotel(hotelID int64) ([]models.Review, error) {
	if hotelID <= 0 {
		return nil, domain.ValidationError{Field: "hotel_id", Msg: "id tidak valid"}
	}

	rows, err := r.db().Query(`
		SELECT id, COALESCE(hotel_id,0), COALESCE(user_id,0), COALESCE(rating,0), COALESCE(comment,''), COALESCE(created_at,'')
		FROM reviews
		WHERE hotel_id=?
		ORDER BY id DESC`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		var v models.Review
		if err := rows.Scan(&v.ID, &v.HotelID, &v.UserID, &v.Rating, &v.Comment, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r ReviewRepository) Create(v models.Review) (models.Review, error) {
	if v.HotelID <= 0 {
		return models.Review{}, domain.ValidationError{Field: "hotel_id", Msg: "id tidak valid"}
	}
	if v.UserID <= 0 {
		return models.Review{}, domain.ValidationError{Field: "user_id", Msg: "id tidak valid"}
	}
	if v.Rating < 1 || v.Rating > 5 {
		return models.Review{}, domain.ValidationError{Field: "rating", Msg: "rating harus 1 sampai 5"}
	}
	v.Comment = strings.TrimSpace(v.Comment)

	res, err := r.db().Exec(`INSERT INTO reviews (hotel_id, user_id, rating, comment) VALUES (?,?,?,?)`,
		v.HotelID, v.UserID, v.Rating, v.Comment)
	if err != nil {
		return models.Review{}, err
	}
	v.ID, err = res.LastInsertId()
	return v, err
}

func (r ReviewRepository) Delete(id, userID int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM reviews WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "review"}
	}
	return nil
}
