package dto

// AddItemRequest adds a catalog product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

// QuantityRequest updates a cart line's quantity.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyPointsRequest toggles the apply-all-points flag.
type ApplyPointsRequest struct {
	Apply bool `json:"apply"`
}

// CartLineResponse is one cart line with its pricing attributes.
type CartLineResponse struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	EarnPerUnit int64   `json:"earn_per_unit"`
	RedeemCost  int64   `json:"redeem_cost"`
	Redeemed    bool    `json:"redeemed"`
	IsPlant     bool    `json:"is_plant"`
}

// CartResponse is the cart with its computed pricing.
type CartResponse struct {
	Lines          []CartLineResponse `json:"lines"`
	ApplyPoints    bool               `json:"apply_points"`
	Subtotal       float64            `json:"subtotal"`
	PointsDiscount float64            `json:"points_discount"`
	FinalTotal     float64            `json:"final_total"`
	PointsConsumed int64              `json:"points_consumed"`
	PointsEarned   int64              `json:"points_earned"`
	Balance        int64              `json:"balance"`
}
