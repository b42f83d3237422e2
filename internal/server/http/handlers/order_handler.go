package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/server/http/dto"
)

// OrderHandler serves checked-out orders.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	accountID := CurrentAccountID(c)
	orders, err := h.facade.Orders(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Redeemed:  l.Redeemed,
			IsPlant:   l.IsPlant,
		})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		Status:       string(order.Status),
		Total:        order.Total,
		PointsSpent:  order.PointsSpent,
		PointsEarned: order.PointsEarned,
		Lines:        lines,
		UploadedAt:   order.UploadedAt,
	}
}
