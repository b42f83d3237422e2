package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdora/ecotrade/internal/cart"
	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/server/http/dto"
)

// CartHandler manages cart and checkout endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/user/cart.
func (h *CartHandler) Get(c *gin.Context) {
	accountID := CurrentAccountID(c)
	snap, pricing, err := h.facade.Cart(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(snap, pricing))
}

// AddItem handles POST /api/user/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	accountID := CurrentAccountID(c)
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.AddCartItem(c.Request.Context(), accountID, req.ProductID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}
	c.Status(http.StatusOK)
}

// RemoveItem handles DELETE /api/user/cart/items/:productID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	accountID := CurrentAccountID(c)
	productID, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveCartItem(c.Request.Context(), accountID, productID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// SetQuantity handles PATCH /api/user/cart/items/:productID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	accountID := CurrentAccountID(c)
	productID, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.SetCartQuantity(c.Request.Context(), accountID, productID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// ApplyPoints handles POST /api/user/cart/apply-points.
func (h *CartHandler) ApplyPoints(c *gin.Context) {
	accountID := CurrentAccountID(c)
	var req dto.ApplyPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetApplyPoints(c.Request.Context(), accountID, req.Apply); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// RedeemItem handles POST /api/user/cart/items/:productID/redeem.
func (h *CartHandler) RedeemItem(c *gin.Context) {
	accountID := CurrentAccountID(c)
	productID, ok := pathID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.RedeemCartItem(c.Request.Context(), accountID, productID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInsufficientPoints):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrNotRedeemable):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// Checkout handles POST /api/user/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	accountID := CurrentAccountID(c)
	order, err := h.facade.Checkout(c.Request.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInsufficientPoints):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrCheckoutInProgress):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrExternalService):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusAccepted, toOrderResponse(*order))
}

func toCartResponse(snap *model.CartSnapshot, pricing *cart.Pricing) dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, dto.CartLineResponse{
			ProductID:   l.ProductID,
			Name:        l.Name,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			EarnPerUnit: l.EarnPerUnit,
			RedeemCost:  l.RedeemCost,
			Redeemed:    l.Redeemed,
			IsPlant:     l.IsPlant,
		})
	}
	return dto.CartResponse{
		Lines:          lines,
		ApplyPoints:    snap.ApplyPoints,
		Subtotal:       pricing.Subtotal,
		PointsDiscount: pricing.PointsDiscount,
		FinalTotal:     pricing.FinalTotal,
		PointsConsumed: pricing.PointsConsumed,
		PointsEarned:   pricing.PointsEarned,
		Balance:        pricing.Balance,
	}
}
