package service

import (
	"strconv"
	"strings"

	"github.com/burningtree/flixbux-prices/internal/domain/ports"
)

type Converter struct {
	rates  ports.RateTable
	target string
}

func NewConverter(rates ports.RateTable, target string) *Converter {
	return &Converter{
		rates:  rates,
		target: strings.ToUpper(strings.TrimSpace(target)),
	}
}

func (c *Converter) Target() string {
	return c.target
}

// Convert moves amount from currency code into the target currency through
// the rate table's base. ok is false when either rate is missing or the
// amount is not a number.
func (c *Converter) Convert(amount string, code string) (float64, bool) {
	sourceRate, ok := c.rates.Rate(code)
	if !ok || sourceRate <= 0 {
		return 0, false
	}
	targetRate, ok := c.rates.Rate(c.target)
	if !ok {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0, false
	}

	return value / sourceRate * targetRate, true
}
