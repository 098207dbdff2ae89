// Package config loads the checkout controller configuration from a YAML
// file layered over types.DefaultConfig.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
	"gopkg.in/yaml.v3"
)

// rates is decoded separately since decimal has no YAML support.
type rates struct {
	USDRates map[string]string `yaml:"usd_rates"`
}

// Load reads path, applies it over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*types.CheckoutConfig, error) {
	if path == "" {
		return types.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes.
func Parse(data []byte) (*types.CheckoutConfig, error) {
	cfg := types.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &types.CheckoutError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	var r rates
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &types.CheckoutError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse usd_rates: %v", err),
		}
	}
	if len(r.USDRates) > 0 {
		cfg.USDRates = make(map[string]decimal.Decimal, len(r.USDRates))
		for symbol, raw := range r.USDRates {
			rate, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, &types.CheckoutError{
					Code:    types.ErrConfigError,
					Message: fmt.Sprintf("invalid usd rate for %s: %v", symbol, err),
				}
			}
			cfg.USDRates[strings.ToUpper(symbol)] = rate
		}
	}

	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
