package handlers

import (
	"net/http"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	user, hash, err := repo.GetByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "email atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "email atau password salah", nil)
		return
	}

	token, err := signToken(user.ID, user.Role, user.Email)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || strings.TrimSpace(req.Password) == "" {
		RespondError(c, http.StatusBadRequest, "email dan password wajib diisi", nil)
		return
	}
	if len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password minimal 8 karakter", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memproses password", err)
		return
	}

	repo := repositories.UserRepository{}
	user, err := repo.Create(models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		Role:  "user",
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := signToken(user.ID, user.Role, user.Email)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(int64(auth.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func signToken(userID int64, role, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"email":   email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(middleware.JWTSecret())
}
