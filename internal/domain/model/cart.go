package model

// CartLine is a single product entry in an account's cart.
type CartLine struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	EarnPerUnit int64   `json:"earn_per_unit"`
	RedeemCost  int64   `json:"redeem_cost"`
	Redeemed    bool    `json:"redeemed"`
	IsPlant     bool    `json:"is_plant"`
}

// CartSnapshot is the durable representation of an account's cart. Line order
// is insertion order and is preserved across load/save cycles.
type CartSnapshot struct {
	Lines       []CartLine `json:"lines"`
	ApplyPoints bool       `json:"apply_points"`
}

// Line returns a pointer to the line with the given product id, or nil.
func (s *CartSnapshot) Line(productID int64) *CartLine {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return &s.Lines[i]
		}
	}
	return nil
}

// RemoveLine deletes the line with the given product id, reporting whether it existed.
func (s *CartSnapshot) RemoveLine(productID int64) bool {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return true
		}
	}
	return false
}
