package dto

// BalanceResponse reports the point balance and its currency value.
type BalanceResponse struct {
	Points        int64   `json:"points"`
	CurrencyValue float64 `json:"currency_value"`
}
