package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdora/ecotrade/internal/server/http/dto"
)

// BalanceHandler serves the EcoPoints balance.
type BalanceHandler struct {
	facade BalanceFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(facade BalanceFacade) *BalanceHandler {
	return &BalanceHandler{facade: facade}
}

// Summary handles GET /api/user/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	accountID := CurrentAccountID(c)
	points, currency, err := h.facade.Balance(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Points: points, CurrencyValue: currency})
}
