package cartcheckout

import (
	"github.com/shopspring/decimal"
	"github.com/vitwit/cartcheckout/progress"
	"github.com/vitwit/cartcheckout/types"
)

// Copy shown by the dialog.
const (
	TitleCheckout       = "Complete Checkout"
	TitleApprove        = "Approve Purchases"
	TitleConfirmWallet  = "Confirm transaction in your wallet"
	TitleFinalizing     = "Finalizing on blockchain"
	MessageFinalizing   = "You can close this modal while it is finalizing on the blockchain; you will be notified once the validation process is complete."
	MessageComplete     = "Congrats! Items purchased successfully."
	LabelWaitApproval   = "Waiting for Approval..."
	LabelWaitValidation = "Waiting to be Validated..."
	LabelClose          = "Close"
	PoweredByURL        = "https://reservoir.tools/"
)

// Icons referenced by the view.
const (
	IconWallet  = "wallet"
	IconCube    = "cube"
	IconSuccess = "check-circle"
)

// Input is everything the host passes in for one render.
type Input struct {
	// Key identifies the checkout for regression tracking. Optional.
	Key string `json:"key,omitempty"`

	Items      []types.CartItem `json:"items"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	Currency   *types.Currency  `json:"currency,omitempty"`

	// Chain overrides the configured chain when set.
	Chain *types.Chain `json:"chain,omitempty"`

	Transaction *types.Transaction `json:"transaction,omitempty"`

	// Open mirrors the host's open prop; nil leaves the dialog as is.
	Open *bool `json:"open,omitempty"`
}

// Affordance is a button.
type Affordance struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Loading  bool   `json:"loading"`
}

// Header summarises the cart above the phase content.
type Header struct {
	ItemCount  int              `json:"itemCount"`
	Images     []string         `json:"images"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	USD        *decimal.Decimal `json:"usd,omitempty"`
	Currency   *types.Currency  `json:"currency,omitempty"`
	Chain      types.Chain      `json:"chain"`
}

// ApprovalView is shown while the wallet has to approve transactions.
type ApprovalView struct {
	Stage progress.Stage `json:"stage"`

	// Indeterminate wait, the engine has not started a step.
	Loading bool `json:"loading,omitempty"`

	// Delegate to the sign-in widget.
	SignIn bool `json:"signIn,omitempty"`

	Title            string                   `json:"title,omitempty"`
	Caption          string                   `json:"caption,omitempty"`
	Icon             string                   `json:"icon,omitempty"`
	TransactionCount int                      `json:"transactionCount,omitempty"`
	Groups           []progress.ApprovalGroup `json:"groups,omitempty"`
	Button           Affordance               `json:"button"`
}

// FinalizingView is shown while the purchase is being validated on chain.
type FinalizingView struct {
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Icon    string     `json:"icon"`
	Button  Affordance `json:"button"`
}

// CompleteView is the terminal success screen.
type CompleteView struct {
	Icon    string                 `json:"icon"`
	Message string                 `json:"message"`
	Lines   []progress.SummaryLine `json:"lines"`
	Close   Affordance             `json:"close"`
}

// View is the render model of the checkout dialog.
type View struct {
	Session    string          `json:"session,omitempty"`
	Open       bool            `json:"open"`
	Title      string          `json:"title"`
	Phase      progress.Phase  `json:"phase"`
	Header     *Header         `json:"header,omitempty"`
	Approval   *ApprovalView   `json:"approval,omitempty"`
	Finalizing *FinalizingView `json:"finalizing,omitempty"`
	Complete   *CompleteView   `json:"complete,omitempty"`
	PoweredBy  bool            `json:"poweredBy"`
}
