package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutConfig contains global configuration for the checkout controller
type CheckoutConfig struct {
	// Base URL of the block explorer, e.g. https://etherscan.io.
	BlockExplorerBaseURL string `json:"blockExplorerBaseUrl" yaml:"block_explorer_base_url" validate:"required,url"`

	// Display name of the block explorer used in summary links.
	BlockExplorerName string `json:"blockExplorerName,omitempty" yaml:"block_explorer_name"`

	// Hides the "Powered by" footer.
	DisablePoweredBy bool `json:"disablePoweredBy,omitempty" yaml:"disable_powered_by"`

	// Number of cart images shown in the checkout header.
	HeaderImageLimit int `json:"headerImageLimit,omitempty" yaml:"header_image_limit" validate:"gte=0"`

	Chain Chain `json:"chain" yaml:"chain"`

	// USD rates keyed by currency symbol, used by the static converter.
	USDRates map[string]decimal.Decimal `json:"usdRates,omitempty" yaml:"-"`

	LogLevel      string `json:"logLevel,omitempty" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics bool   `json:"enableMetrics,omitempty" yaml:"enable_metrics"`

	Feed FeedConfig `json:"feed,omitempty" yaml:"feed"`
	HTTP HTTPConfig `json:"http,omitempty" yaml:"http"`
}

// FeedConfig configures the Kafka snapshot feed.
type FeedConfig struct {
	Enabled     bool          `json:"enabled,omitempty" yaml:"enabled"`
	Brokers     []string      `json:"brokers,omitempty" yaml:"brokers" validate:"required_if=Enabled true"`
	Topic       string        `json:"topic,omitempty" yaml:"topic" validate:"required_if=Enabled true"`
	GroupID     string        `json:"groupId,omitempty" yaml:"group_id" validate:"required_if=Enabled true"`
	PollTimeout time.Duration `json:"pollTimeout,omitempty" yaml:"poll_timeout"`
}

// HTTPConfig configures the render preview server.
type HTTPConfig struct {
	Addr         string        `json:"addr,omitempty" yaml:"addr"`
	ReadTimeout  time.Duration `json:"readTimeout,omitempty" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"writeTimeout,omitempty" yaml:"write_timeout"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *CheckoutConfig {
	return &CheckoutConfig{
		BlockExplorerBaseURL: "https://etherscan.io",
		BlockExplorerName:    "Etherscan",
		HeaderImageLimit:     2,
		Chain: Chain{
			ID:         1,
			Name:       "mainnet",
			BaseAPIURL: "https://api.reservoir.tools",
		},
		LogLevel: "info",
		Feed: FeedConfig{
			PollTimeout: 5 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}
