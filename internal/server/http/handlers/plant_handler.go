package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/plant"
	"github.com/verdora/ecotrade/internal/server/http/dto"
)

// PlantHandler manages the plant collection and care endpoints.
type PlantHandler struct {
	facade PlantFacade
	now    func() time.Time
}

// NewPlantHandler constructs PlantHandler.
func NewPlantHandler(facade PlantFacade) *PlantHandler {
	return &PlantHandler{facade: facade, now: time.Now}
}

// List handles GET /api/user/plants.
func (h *PlantHandler) List(c *gin.Context) {
	accountID := CurrentAccountID(c)
	plants, err := h.facade.Plants(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(plants) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	now := h.now()
	response := make([]dto.PlantResponse, 0, len(plants))
	for i := range plants {
		response = append(response, h.toPlantResponse(&plants[i], now))
	}
	c.JSON(http.StatusOK, response)
}

// Water handles POST /api/user/plants/:plantID/water.
func (h *PlantHandler) Water(c *gin.Context) {
	h.maintain(c, func(accountID, plantID int64) (*plant.MaintenanceResult, error) {
		return h.facade.WaterPlant(c.Request.Context(), accountID, plantID)
	})
}

// Fertilize handles POST /api/user/plants/:plantID/fertilize.
func (h *PlantHandler) Fertilize(c *gin.Context) {
	h.maintain(c, func(accountID, plantID int64) (*plant.MaintenanceResult, error) {
		return h.facade.FertilizePlant(c.Request.Context(), accountID, plantID)
	})
}

// Care handles POST /api/user/plants/:plantID/care.
func (h *PlantHandler) Care(c *gin.Context) {
	plantID, ok := pathID(c, "plantID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.CareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	h.maintain(c, func(accountID, _ int64) (*plant.MaintenanceResult, error) {
		return h.facade.RecordPlantCare(c.Request.Context(), accountID, model.MaintenanceEvent{
			PlantID:  plantID,
			Type:     model.MaintenanceType(req.Type),
			Notes:    req.Notes,
			HeightCm: req.HeightCm,
		})
	})
}

// AdvanceStage handles POST /api/user/plants/:plantID/advance.
func (h *PlantHandler) AdvanceStage(c *gin.Context) {
	accountID := CurrentAccountID(c)
	plantID, ok := pathID(c, "plantID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.facade.AdvancePlantStage(c.Request.Context(), accountID, plantID)
	if err != nil {
		h.plantError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toPlantResponse(updated, h.now()))
}

// SetHealth handles PATCH /api/user/plants/:plantID/health.
func (h *PlantHandler) SetHealth(c *gin.Context) {
	accountID := CurrentAccountID(c)
	plantID, ok := pathID(c, "plantID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.HealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.facade.SetPlantHealth(c.Request.Context(), accountID, plantID, model.HealthStatus(req.Status))
	if err != nil {
		h.plantError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toPlantResponse(updated, h.now()))
}

// Delete handles DELETE /api/user/plants/:plantID.
func (h *PlantHandler) Delete(c *gin.Context) {
	accountID := CurrentAccountID(c)
	plantID, ok := pathID(c, "plantID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeletePlant(c.Request.Context(), accountID, plantID); err != nil {
		h.plantError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *PlantHandler) maintain(c *gin.Context, action func(accountID, plantID int64) (*plant.MaintenanceResult, error)) {
	accountID := CurrentAccountID(c)
	plantID, ok := pathID(c, "plantID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := action(accountID, plantID)
	if err != nil {
		h.plantError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MaintenanceResponse{
		Plant:         h.toPlantResponse(result.Plant, h.now()),
		PointsAwarded: result.PointsAwarded,
		BonusApplied:  result.BonusApplied,
	})
}

func (h *PlantHandler) plantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrTooSoon):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidMaintenanceType), errors.Is(err, domainErrors.ErrInvalidHealthStatus):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func (h *PlantHandler) toPlantResponse(p *model.PlantRecord, now time.Time) dto.PlantResponse {
	return dto.PlantResponse{
		ID:                p.ID,
		Name:              p.Name,
		Species:           p.Species,
		GrowthStage:       string(p.GrowthStage),
		HealthStatus:      string(p.HealthStatus),
		HeightCm:          p.HeightCm,
		LastWatered:       p.LastWatered,
		LastFertilized:    p.LastFertilized,
		PurchaseDate:      p.PurchaseDate,
		PlantingDate:      p.PlantingDate,
		Notes:             p.Notes,
		WateringStatus:    string(plant.WateringStatus(p, now)),
		FertilizingStatus: string(plant.FertilizingStatus(p, now)),
	}
}
