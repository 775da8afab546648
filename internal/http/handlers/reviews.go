package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GET /api/hotels/:id/reviews
func GetHotelReviews(c *gin.Context) {
	hotelID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.ReviewRepository{}
	list, err := repo.ListByHotel(hotelID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}

// POST /api/hotels/:id/reviews (auth)
func CreateHotelReview(c *gin.Context) {
	hotelID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	auth := middleware.GetAuthContext(c)
	repo := repositories.ReviewRepository{}
	created, err := repo.Create(models.Review{
		HotelID: hotelID,
		UserID:  int64(auth.UserID),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": created})
}

// DELETE /api/reviews/:id (auth, own review only)
func DeleteReview(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	auth := middleware.GetAuthContext(c)
	repo := repositories.ReviewRepository{}
	if err := repo.Delete(id, int64(auth.UserID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
