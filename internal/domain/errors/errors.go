package errors

import "errors"

var (
	ErrNavigationNotFound = errors.New("language switcher navigation not found")
	ErrPriceUnavailable   = errors.New("price unavailable")
	ErrUnknownSymbol      = errors.New("unknown currency symbol")
	ErrRateNotFound       = errors.New("exchange rate not found")
	ErrInvalidItinerary   = errors.New("invalid itinerary")
)
