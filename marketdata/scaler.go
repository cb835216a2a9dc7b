// Package marketdata adapts external decimal-priced market data (REST
// snapshots, websocket streams) into the matching engine's integer-tick
// feed.Event stream. Only the scaling obligation and a thin illustrative
// exchange adapter are in scope here — general REST/WS client machinery
// is a host application's concern, not the core engine's.
package marketdata

import (
	"fmt"

	"github.com/kprice-io/lob-engine"
	"github.com/shopspring/decimal"
)

// Scaler converts an exchange's decimal-string prices and sizes into the
// engine's scaled integer ticks, using a fixed number of decimal places
// of precision (tickExponent). A symbol quoted to 2 decimal places needs
// tickExponent 2 so that "103.25" becomes Price(10325).
type Scaler struct {
	tickExponent int32
	scale        decimal.Decimal
}

// NewScaler builds a Scaler for a given number of decimal places of
// precision. tickExponent must be >= 0.
func NewScaler(tickExponent int32) Scaler {
	if tickExponent < 0 {
		panic("marketdata: tickExponent must be >= 0")
	}
	return Scaler{tickExponent: tickExponent, scale: decimal.New(1, tickExponent)}
}

// Price parses a decimal string (e.g. "103.25") into a scaled book.Price.
func (s Scaler) Price(raw string) (book.Price, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("marketdata: parse price %q: %w", raw, err)
	}
	return book.Price(v.Mul(s.scale).Round(0).IntPart()), nil
}

// Quantity parses a decimal string into a scaled book.Quantity.
func (s Scaler) Quantity(raw string) (book.Quantity, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("marketdata: parse quantity %q: %w", raw, err)
	}
	return book.Quantity(v.Mul(s.scale).Round(0).IntPart()), nil
}

// UnscalePrice converts a scaled book.Price back to a decimal string at
// this Scaler's precision, for logging/display.
func (s Scaler) UnscalePrice(p book.Price) string {
	return decimal.NewFromInt(int64(p)).Div(s.scale).String()
}
