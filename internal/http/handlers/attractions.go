package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/attractions?destination_id=
func GetAttractions(c *gin.Context) {
	destID, _ := strconv.ParseInt(c.Query("destination_id"), 10, 64)
	repo := repositories.AttractionRepository{}
	list, err := repo.List(destID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attractions": list})
}

// GET /api/attractions/:id
func GetAttractionByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.AttractionRepository{}
	a, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attraction": a})
}

// POST /api/attractions (admin)
func CreateAttraction(c *gin.Context) {
	var a models.Attraction
	if !BindJSONOrError(c, &a) {
		return
	}
	repo := repositories.AttractionRepository{}
	created, err := repo.Create(a)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attraction": created})
}

// PUT /api/attractions/:id (admin)
func UpdateAttraction(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var a models.Attraction
	if !BindJSONOrError(c, &a) {
		return
	}
	repo := repositories.AttractionRepository{}
	if err := repo.Update(id, a); err != nil {
		RespondDomainError(c, err)
		return
	}
	a.ID = id
	c.JSON(http.StatusOK, gin.H{"attraction": a})
}

// DELETE /api/attractions/:id (admin)
func DeleteAttraction(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.AttractionRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
