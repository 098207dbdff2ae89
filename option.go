package cartcheckout

import (
	"github.com/vitwit/cartcheckout/logger"
	"github.com/vitwit/cartcheckout/metrics"
	"github.com/vitwit/cartcheckout/pricing"
)

type Option func(*Checkout)

func WithLogger(l logger.Logger) Option {
	return func(c *Checkout) {
		c.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Checkout) {
		c.metrics = r
	}
}

// WithConverter sets the USD price source. Without one USD values are omitted.
func WithConverter(conv pricing.Converter) Option {
	return func(c *Checkout) {
		c.converter = conv
	}
}

// WithOnClose registers the callback that closes the enclosing container
// (the cart popover) when the user closes the dialog.
func WithOnClose(fn func()) Option {
	return func(c *Checkout) {
		c.onClose = fn
	}
}
