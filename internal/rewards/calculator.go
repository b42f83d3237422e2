// Package rewards holds the pure point arithmetic of the EcoPoints economy:
// purchase earn rates, redemption costs, recycling rates per plastic type,
// the point/currency exchange, and the maintenance bonus policy.
package rewards

import (
	"math"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
)

// PointsPerCurrencyUnit is the fixed exchange rate: 10 points = 1 unit of currency.
const PointsPerCurrencyUnit = 10

// Points awarded per kilogram of recycled plastic, by type.
var plasticRates = map[model.PlasticType]float64{
	model.PlasticPET:   10,
	model.PlasticHDPE:  8,
	model.PlasticPVC:   6,
	model.PlasticLDPE:  7,
	model.PlasticPP:    9,
	model.PlasticOther: 5,
}

// Maintenance point policy.
const (
	WaterBasePoints      int64 = 3
	WaterBonusPoints     int64 = 2
	FertilizeBasePoints  int64 = 5
	FertilizeBonusPoints int64 = 5
	PrunePoints          int64 = 5
	RepotPoints          int64 = 15
	OtherCarePoints      int64 = 2
	growthPointsPerCm          = 2
)

// EarnForLine returns the points a cart line earns on purchase. A redeemed
// line earns nothing; earn and redemption on the same line are mutually
// exclusive.
func EarnForLine(line model.CartLine) int64 {
	if line.Redeemed {
		return 0
	}
	return int64(math.Floor(float64(line.EarnPerUnit) * float64(line.Quantity)))
}

// RedeemCostForLine reports the points required to mark the whole line free.
// It performs no balance check; the redemption path owns that.
func RedeemCostForLine(line model.CartLine) int64 {
	return line.RedeemCost
}

// RecyclingPoints converts a plastic drop-off into points. Weight must be
// strictly positive.
func RecyclingPoints(weightKg float64, plasticType model.PlasticType) (int64, error) {
	if weightKg <= 0 {
		return 0, domainErrors.ErrInvalidWeight
	}
	rate, ok := plasticRates[plasticType]
	if !ok {
		return 0, domainErrors.ErrInvalidPlasticType
	}
	return int64(math.Round(weightKg * rate)), nil
}

// PointsToCurrency converts a point amount to its currency value. This is the
// single source of truth for the exchange everywhere a point value is shown
// or subtracted as a discount.
func PointsToCurrency(points int64) float64 {
	return float64(points) / PointsPerCurrencyUnit
}

// CurrencyToPoints converts a currency amount back to points.
func CurrencyToPoints(amount float64) int64 {
	return int64(math.Round(amount * PointsPerCurrencyUnit))
}

// WateringPoints returns the award for a watering action: the base reward,
// plus the bonus when the previous watering falls inside the eligible window.
func WateringPoints(inBonusWindow bool) int64 {
	if inBonusWindow {
		return WaterBasePoints + WaterBonusPoints
	}
	return WaterBasePoints
}

// FertilizingPoints mirrors WateringPoints for fertilizing.
func FertilizingPoints(inBonusWindow bool) int64 {
	if inBonusWindow {
		return FertilizeBasePoints + FertilizeBonusPoints
	}
	return FertilizeBasePoints
}

// GrowthPoints awards points for recorded height growth, 2 per centimeter,
// rounded up. Non-positive growth awards nothing.
func GrowthPoints(previousCm, currentCm float64) int64 {
	grown := currentCm - previousCm
	if grown <= 0 {
		return 0
	}
	return int64(math.Ceil(grown * growthPointsPerCm))
}
