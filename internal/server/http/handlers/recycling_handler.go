package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/server/http/dto"
)

// RecyclingHandler manages plastic drop-off endpoints.
type RecyclingHandler struct {
	facade RecyclingFacade
}

// NewRecyclingHandler constructs RecyclingHandler.
func NewRecyclingHandler(facade RecyclingFacade) *RecyclingHandler {
	return &RecyclingHandler{facade: facade}
}

// Submit handles POST /api/user/recycling.
func (h *RecyclingHandler) Submit(c *gin.Context) {
	accountID := CurrentAccountID(c)
	var req dto.RecyclingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	submission, err := h.facade.SubmitRecycling(c.Request.Context(), accountID, model.PlasticType(req.PlasticType), req.WeightKg, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidWeight), errors.Is(err, domainErrors.ErrInvalidPlasticType):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toRecyclingResponse(*submission))
}

// History handles GET /api/user/recycling.
func (h *RecyclingHandler) History(c *gin.Context) {
	accountID := CurrentAccountID(c)
	history, err := h.facade.RecyclingHistory(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(history) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RecyclingResponse, 0, len(history))
	for _, s := range history {
		response = append(response, toRecyclingResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

func toRecyclingResponse(s model.RecyclingSubmission) dto.RecyclingResponse {
	return dto.RecyclingResponse{
		ID:          s.ID,
		PlasticType: string(s.PlasticType),
		WeightKg:    s.WeightKg,
		Points:      s.Points,
		Notes:       s.Notes,
		SubmittedAt: s.SubmittedAt,
	}
}
