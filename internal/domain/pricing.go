package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSeatPrice is charged for a seat that is missing from a selection's
// price map. Hitting this path means the price map was built incompletely
// upstream, so callers should log it rather than treat it as normal.
var DefaultSeatPrice = decimal.NewFromInt(200)

// Tier maps a set of seat rows to a multiplier over the showtime's base price.
type Tier struct {
	Rows       string
	Multiplier decimal.Decimal
}

// TierConfig is an ordered list of tiers; the first tier containing a seat's
// row wins.
type TierConfig []Tier

// DefaultTierConfig returns the house tier layout: front rows at base price,
// executive rows at 1.5x, premium back rows at 2x.
func DefaultTierConfig() TierConfig {
	return TierConfig{
		{Rows: "ABC", Multiplier: decimal.NewFromInt(1)},
		{Rows: "DEF", Multiplier: decimal.NewFromFloat(1.5)},
		{Rows: "GH", Multiplier: decimal.NewFromInt(2)},
	}
}

// PriceForSeat derives the price of a single seat from its label and the
// showtime's base price. The row letter is the label's first character,
// matched case-sensitively. A row that appears in no tier prices at base,
// so an unexpected label never fails checkout.
func PriceForSeat(seatLabel string, basePrice decimal.Decimal, config TierConfig) decimal.Decimal {
	if seatLabel == "" {
		return basePrice.Round(2)
	}

	row := seatLabel[:1]

	for _, tier := range config {
		if strings.Contains(tier.Rows, row) {
			return basePrice.Mul(tier.Multiplier).Round(2)
		}
	}

	return basePrice.Round(2)
}

// TotalForSeats sums the mapped price of every seat, falling back to
// DefaultSeatPrice for seats absent from the map. The returned slice lists
// the seats that fell back, for the caller to flag.
func TotalForSeats(seats []string, seatPrices map[string]decimal.Decimal) (decimal.Decimal, []string) {
	total := decimal.Zero

	var unpriced []string

	for _, seat := range seats {
		price, ok := seatPrices[seat]
		if !ok {
			price = DefaultSeatPrice
			unpriced = append(unpriced, seat)
		}

		total = total.Add(price)
	}

	return total.Round(2), unpriced
}
