package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/hotels?destination_id=
func GetHotels(c *gin.Context) {
	destID, _ := strconv.ParseInt(c.Query("destination_id"), 10, 64)
	repo := repositories.HotelRepository{}
	list, err := repo.List(destID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": list})
}

// GET /api/hotels/:id
func GetHotelByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.HotelRepository{}
	h, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": h})
}

// POST /api/hotels (admin)
func CreateHotel(c *gin.Context) {
	var h models.Hotel
	if !BindJSONOrError(c, &h) {
		return
	}
	repo := repositories.HotelRepository{}
	created, err := repo.Create(h)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hotel": created})
}

// PUT /api/hotels/:id (admin)
func UpdateHotel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var h models.Hotel
	if !BindJSONOrError(c, &h) {
		return
	}
	repo := repositories.HotelRepository{}
	if err := repo.Update(id, h); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.ID = id
	c.JSON(http.StatusOK, gin.H{"hotel": h})
}

// DELETE /api/hotels/:id (admin)
func DeleteHotel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.HotelRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
