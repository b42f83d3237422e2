package model

import "time"

// OrderStatus describes fulfillment lifecycle of a checked-out order.
type OrderStatus string

const (
	OrderStatusSubmitted  OrderStatus = "SUBMITTED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusFulfilled  OrderStatus = "FULFILLED"
	OrderStatusRejected   OrderStatus = "REJECTED"
)

// Terminal reports whether the status will no longer change.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusFulfilled || s == OrderStatusRejected
}

// OrderLine is a priced product entry captured at checkout time.
type OrderLine struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	EarnPerUnit int64   `json:"earn_per_unit"`
	Redeemed    bool    `json:"redeemed"`
	IsPlant     bool    `json:"is_plant"`
}

// Order is the local record of an order accepted by the fulfillment service.
type Order struct {
	ID              int64
	AccountID       int64
	Lines           []OrderLine
	Status          OrderStatus
	Total           float64
	PointsSpent     int64
	PointsEarned    int64
	ExternalRef     string
	PlantsProjected bool
	UploadedAt      time.Time
	UpdatedAt       time.Time
}

// FulfillmentStatus is the state reported by the external fulfillment service.
type FulfillmentStatus string

const (
	FulfillmentAccepted   FulfillmentStatus = "ACCEPTED"
	FulfillmentProcessing FulfillmentStatus = "PROCESSING"
	FulfillmentFulfilled  FulfillmentStatus = "FULFILLED"
	FulfillmentRejected   FulfillmentStatus = "REJECTED"
)

// Fulfillment encapsulates an order status check result.
type Fulfillment struct {
	Ref    string
	Status FulfillmentStatus
}

// Product is a catalog entry served by the external catalog service.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	EarnPerUnit int64
	RedeemCost  int64
	IsPlant     bool
}
