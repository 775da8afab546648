package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user plus its password hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "email kosong"}
	}

	var u models.User
	var hash string
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(role,'user'), COALESCE(password_hash,'')
		FROM users
		WHERE email=?
		LIMIT 1`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}

	var u models.User
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(role,'user')
		FROM users
		WHERE id=?
		LIMIT 1`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a user with a pre-hashed password. Duplicate email maps to
// ConflictError via the unique index on users.email.
func (r UserRepository) Create(u models.User, passwordHash string) (models.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email kosong"}
	}
	role := strings.TrimSpace(u.Role)
	if role == "" {
		role = "user"
	}

	res, err := r.db().Exec(`INSERT INTO users (name, email, phone, role, password_hash) VALUES (?,?,?,?,?)`,
		u.Name, u.Email, u.Phone, role, passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar", Err: err}
		}
		return models.User{}, err
	}
	u.ID, err = res.LastInsertId()
	u.Role = role
	return u, err
}
