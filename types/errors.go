package types

// CheckoutError is returned by the parsing and configuration layers.
type CheckoutError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e CheckoutError) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrInvalidSnapshot = "INVALID_SNAPSHOT"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrConfigError     = "CONFIG_ERROR"
	ErrFeedError       = "FEED_ERROR"
)
