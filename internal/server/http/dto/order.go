package dto

import "time"

// OrderLineResponse is a priced order line.
type OrderLineResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Redeemed  bool    `json:"redeemed"`
	IsPlant   bool    `json:"is_plant"`
}

// OrderResponse is a checked-out order with its fulfillment status.
type OrderResponse struct {
	ID           int64               `json:"id"`
	Status       string              `json:"status"`
	Total        float64             `json:"total"`
	PointsSpent  int64               `json:"points_spent"`
	PointsEarned int64               `json:"points_earned"`
	Lines        []OrderLineResponse `json:"lines"`
	UploadedAt   time.Time           `json:"uploaded_at"`
}
