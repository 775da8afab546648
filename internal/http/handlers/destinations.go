package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/destinations
func GetDestinations(c *gin.Context) {
	repo := repositories.DestinationRepository{}
	list, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": list})
}

// GET /api/destinations/:id
func GetDestinationByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.DestinationRepository{}
	d, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": d})
}

// POST /api/destinations (admin)
func CreateDestination(c *gin.Context) {
	var d models.Destination
	if !BindJSONOrError(c, &d) {
		return
	}
	repo := repositories.DestinationRepository{}
	created, err := repo.Create(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": created})
}

// PUT /api/destinations/:id (admin)
func UpdateDestination(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var d models.Destination
	if !BindJSONOrError(c, &d) {
		return
	}
	repo := repositories.DestinationRepository{}
	if err := repo.Update(id, d); err != nil {
		RespondDomainError(c, err)
		return
	}
	d.ID = id
	c.JSON(http.StatusOK, gin.H{"destination": d})
}

// DELETE /api/destinations/:id (admin)
func DeleteDestination(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.DestinationRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
