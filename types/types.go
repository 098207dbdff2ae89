package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Status is the checkout status reported by the execution engine.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusApproving  Status = "approving"
	StatusFinalizing Status = "finalizing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// StepAuth is the step id the engine uses when the wallet must sign in first.
const StepAuth = "auth"

// Step item statuses as emitted by the engine.
const (
	ItemIncomplete = "incomplete"
	ItemComplete   = "complete"
)

func (s Status) String() string {
	return string(s)
}

// Known reports whether the status is one the engine is documented to emit.
func (s Status) Known() bool {
	switch s {
	case StatusIdle, StatusApproving, StatusFinalizing, StatusComplete, StatusError:
		return true
	}
	return false
}

// Transaction is a point-in-time snapshot of checkout progress. The engine
// owns and mutates the original; callers should evaluate a Clone.
type Transaction struct {
	// Status of the whole checkout.
	Status Status `json:"status,omitempty"`

	// Step the engine is currently executing, nil until execution starts.
	CurrentStep *Step `json:"currentStep,omitempty"`

	// Planned execution path, one entry per leg.
	Path []PathEntry `json:"path,omitempty" validate:"omitempty,dive"`

	// Error message attached by the engine, if any.
	Error string `json:"error,omitempty"`
}

// Step is one logical phase of execution.
type Step struct {
	ID          string     `json:"id"`
	Action      string     `json:"action,omitempty"`
	Description string     `json:"description,omitempty"`
	Kind        string     `json:"kind,omitempty"`
	Items       []StepItem `json:"items,omitempty" validate:"omitempty,dive"`
}

// StepItem is one physical action within a step, typically one wallet
// confirmation.
type StepItem struct {
	Status   string          `json:"status,omitempty"`
	TxHash   string          `json:"txHash,omitempty"`
	OrderIDs OrderIDs        `json:"orderIds,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Complete reports whether the engine marked the item as done.
func (i StepItem) Complete() bool {
	return i.Status == ItemComplete
}

// OrderIDs is the optional list of marketplace orders a step item fulfils.
// A nil value means the engine did not report any.
type OrderIDs []string

// Present reports whether the engine supplied at least one order id.
func (o OrderIDs) Present() bool {
	return len(o) > 0
}

// Count is the number of items the step item covers. Absent or empty lists
// count as a single item.
func (o OrderIDs) Count() int {
	if len(o) == 0 {
		return 1
	}
	return len(o)
}

// PathEntry is one planned leg of the execution path.
type PathEntry struct {
	OrderID          string           `json:"orderId,omitempty"`
	Contract         string           `json:"contract,omitempty"`
	TokenID          string           `json:"tokenId,omitempty"`
	Quantity         int              `json:"quantity,omitempty" validate:"gte=0"`
	Source           string           `json:"source,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	CurrencySymbol   string           `json:"currencySymbol,omitempty"`
	CurrencyDecimals int              `json:"currencyDecimals,omitempty"`
	Quote            *decimal.Decimal `json:"quote,omitempty"`
	BuyInQuote       *decimal.Decimal `json:"buyInQuote,omitempty"`
}

// Clone returns a deep copy of the snapshot. A nil receiver yields nil.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}

	out := &Transaction{
		Status: t.Status,
		Error:  t.Error,
	}

	if t.Path != nil {
		out.Path = make([]PathEntry, len(t.Path))
		for i, p := range t.Path {
			out.Path[i] = p.clone()
		}
	}

	if t.CurrentStep != nil {
		step := *t.CurrentStep
		if t.CurrentStep.Items != nil {
			step.Items = make([]StepItem, len(t.CurrentStep.Items))
			for i, item := range t.CurrentStep.Items {
				step.Items[i] = item.clone()
			}
		}
		out.CurrentStep = &step
	}

	return out
}

func (i StepItem) clone() StepItem {
	out := i
	if i.OrderIDs != nil {
		out.OrderIDs = append(OrderIDs(make([]string, 0, len(i.OrderIDs))), i.OrderIDs...)
	}
	if i.Data != nil {
		out.Data = append(json.RawMessage(nil), i.Data...)
	}
	return out
}

func (p PathEntry) clone() PathEntry {
	out := p
	if p.Quote != nil {
		q := *p.Quote
		out.Quote = &q
	}
	if p.BuyInQuote != nil {
		q := *p.BuyInQuote
		out.BuyInQuote = &q
	}
	return out
}
