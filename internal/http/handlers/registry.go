package handlers

import (
	"net/http"

	"angkot/internal/repositories"
	"angkot/internal/services"

	"github.com/gin-gonic/gin"
)

func registry() services.RegistryService {
	return services.RegistryService{Store: repositories.LedgerRepository{}}
}

type nameRequest struct {
	Name string `json:"name"`
}

// GET /api/drivers?chat_id=
func GetDrivers(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	drivers, err := registry().DriverList(c.Request.Context(), chatID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if drivers == nil {
		drivers = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// POST /api/drivers?chat_id=
func CreateDriver(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	var req nameRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := registry().AddDriver(c.Request.Context(), req.Name, chatID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "driver tersimpan", "name": req.Name})
}

// GET /api/passengers?chat_id=
func GetPassengers(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	passengers, err := registry().PassengerList(c.Request.Context(), chatID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if passengers == nil {
		passengers = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"passengers": passengers})
}

// POST /api/passengers?chat_id=
func CreatePassenger(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	var req nameRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := registry().AddPassenger(c.Request.Context(), req.Name, chatID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "penumpang tersimpan", "name": req.Name})
}
