// Package pricing converts listing prices to a USD equivalent for display.
package pricing

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Converter returns the USD value of amount denominated in symbol. The
// boolean is false when no rate is known; callers omit USD display then.
type Converter interface {
	USDValue(ctx context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, bool)
}

// Noop never knows a rate.
type Noop struct{}

func (Noop) USDValue(context.Context, string, decimal.Decimal) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

// StaticRates converts with a fixed symbol -> USD rate table. It is safe for
// concurrent use.
type StaticRates struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

// NewStaticRates copies the given table. Symbols are matched case-insensitively.
func NewStaticRates(rates map[string]decimal.Decimal) *StaticRates {
	s := &StaticRates{rates: make(map[string]decimal.Decimal, len(rates))}
	for symbol, rate := range rates {
		s.rates[strings.ToUpper(symbol)] = rate
	}
	return s
}

// Set updates the rate of a symbol.
func (s *StaticRates) Set(symbol string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[strings.ToUpper(symbol)] = rate
}

func (s *StaticRates) USDValue(_ context.Context, symbol string, amount decimal.Decimal) (decimal.Decimal, bool) {
	s.mu.RLock()
	rate, ok := s.rates[strings.ToUpper(symbol)]
	s.mu.RUnlock()
	if !ok || symbol == "" {
		return decimal.Zero, false
	}
	return amount.Mul(rate).Round(2), true
}

// USD is a helper returning a pointer, nil when the conversion is unavailable.
func USD(ctx context.Context, c Converter, symbol string, amount *decimal.Decimal) *decimal.Decimal {
	if c == nil || amount == nil {
		return nil
	}
	v, ok := c.USDValue(ctx, symbol, *amount)
	if !ok {
		return nil
	}
	return &v
}
