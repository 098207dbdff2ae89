package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vitwit/cartcheckout/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validator exposes the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// ParseTransaction decodes and validates an engine snapshot from JSON.
func ParseTransaction(data []byte) (*types.Transaction, error) {
	var tx types.Transaction

	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, &types.CheckoutError{
			Code:    types.ErrInvalidSnapshot,
			Message: fmt.Sprintf("failed to parse transaction snapshot: %v", err),
		}
	}

	if err := ValidateTransaction(&tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

// ValidateTransaction checks struct tags on a decoded snapshot.
func ValidateTransaction(tx *types.Transaction) error {
	if err := validate.Struct(tx); err != nil {
		return &types.CheckoutError{
			Code:    types.ErrInvalidSnapshot,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// ParseConfig parses CheckoutConfig from JSON on top of the defaults.
func ParseConfig(data []byte) (*types.CheckoutConfig, error) {
	config := types.DefaultConfig()

	if err := json.Unmarshal(data, config); err != nil {
		return nil, &types.CheckoutError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse checkout config: %v", err),
		}
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig checks struct tags on a config.
func ValidateConfig(config *types.CheckoutConfig) error {
	if err := validate.Struct(config); err != nil {
		return &types.CheckoutError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// SerializeView converts any view model to indented JSON.
func SerializeView(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
