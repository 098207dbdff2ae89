// Package cartcheckout turns checkout transaction snapshots from an external
// execution engine into the view model of a "Complete Checkout" dialog.
package cartcheckout

import (
	"context"
	"time"

	"github.com/vitwit/cartcheckout/dialog"
	"github.com/vitwit/cartcheckout/links"
	"github.com/vitwit/cartcheckout/logger"
	"github.com/vitwit/cartcheckout/metrics"
	"github.com/vitwit/cartcheckout/pricing"
	"github.com/vitwit/cartcheckout/progress"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
)

// Checkout is the progress controller behind the checkout dialog
type Checkout struct {
	config    *types.CheckoutConfig
	logger    logger.Logger
	metrics   metrics.Recorder
	converter pricing.Converter
	onClose   func()
	dialog    *dialog.Dialog
	tracker   *progress.Tracker
}

// New creates a controller with the given configuration
func New(config *types.CheckoutConfig, opts ...Option) *Checkout {
	if config == nil {
		config = types.DefaultConfig()
	}

	c := &Checkout{
		config:    config,
		logger:    logger.NoopLogger{},
		metrics:   metrics.NoopRecorder{},
		converter: pricing.Noop{},
		tracker:   progress.NewTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dialog = dialog.New(c.onClose)

	return c
}

// NewFromConfig wires logging, metrics and USD rates from the configuration.
// Options are applied last and win.
func NewFromConfig(config *types.CheckoutConfig, opts ...Option) *Checkout {
	if config == nil {
		config = types.DefaultConfig()
	}

	base := []Option{
		WithLogger(logger.NewZapLogger(config.LogLevel)),
	}
	if config.EnableMetrics {
		base = append(base, WithMetrics(metrics.NewPrometheusRecorder()))
	}
	if len(config.USDRates) > 0 {
		base = append(base, WithConverter(pricing.NewStaticRates(config.USDRates)))
	}

	return New(config, append(base, opts...)...)
}

// NewWithDefaults creates a controller with the default configuration
func NewWithDefaults() *Checkout {
	return NewFromConfig(types.DefaultConfig())
}

// Config returns the configuration in use.
func (c *Checkout) Config() *types.CheckoutConfig {
	return c.config
}

// Dialog exposes the open/close state.
func (c *Checkout) Dialog() *dialog.Dialog {
	return c.dialog
}

// OnOpenChange forwards a user driven open or close of the dialog.
func (c *Checkout) OnOpenChange(open bool) {
	c.dialog.OnOpenChange(open)
	if !open {
		c.logger.Debug("checkout dialog closed", map[string]any{"session": c.dialog.Session()})
	}
}

// Dismiss is the Close button of the completion screen.
func (c *Checkout) Dismiss() {
	c.dialog.Dismiss()
}

// Render evaluates one snapshot. The snapshot is cloned first so the engine's
// copy is never shared with the returned view.
func (c *Checkout) Render(ctx context.Context, in Input) *View {
	open := c.dialog.Sync(in.Open)
	return c.render(ctx, in, open, c.dialog.Session())
}

// Preview renders a snapshot without touching the dialog. The view is open
// unless in.Open is explicitly false. Regression tracking by Key still
// applies.
func (c *Checkout) Preview(ctx context.Context, in Input) *View {
	open := in.Open == nil || *in.Open
	return c.render(ctx, in, open, "")
}

func (c *Checkout) render(ctx context.Context, in Input, open bool, session string) *View {
	start := time.Now()

	tx := in.Transaction.Clone()
	sel := progress.Classify(tx)

	fields := map[string]any{
		"session": session,
		"status":  sel.Status.String(),
		"phase":   sel.Phase.String(),
	}
	if in.Key != "" {
		fields["checkout"] = in.Key
	}
	labels := map[string]string{"phase": sel.Phase.String()}

	if !sel.Recognized {
		c.logger.Warn("unrecognized checkout status", fields)
		c.metrics.IncCounter(metrics.PhaseUnrecognized, labels)
	}

	if in.Key != "" {
		if prev, regressed := c.tracker.Observe(in.Key, sel.Phase); regressed {
			c.logger.Warn("checkout phase moved backwards", logger.Fields(fields, map[string]any{"previous": prev.String()}))
			c.metrics.IncCounter(metrics.PhaseRegressed, labels)
		}
	}

	for _, problem := range utils.Diagnostics(tx) {
		c.logger.Debug("snapshot diagnostic", logger.Fields(fields, map[string]any{"problem": problem}))
	}

	view := &View{
		Session:   session,
		Open:      open,
		Title:     TitleCheckout,
		Phase:     sel.Phase,
		PoweredBy: !c.config.DisablePoweredBy,
	}
	if !open {
		return view
	}

	chain := c.config.Chain
	if in.Chain != nil {
		chain = *in.Chain
	}

	switch sel.Phase {
	case progress.PhaseApproving:
		view.Header = c.header(ctx, in, chain)
		view.Approval = c.approval(ctx, tx, sel, chain, fields)
	case progress.PhaseFinalizing:
		view.Header = c.header(ctx, in, chain)
		view.Finalizing = &FinalizingView{
			Title:   TitleFinalizing,
			Message: MessageFinalizing,
			Icon:    IconCube,
			Button:  Affordance{Label: LabelWaitValidation, Disabled: true, Loading: true},
		}
	case progress.PhaseComplete:
		view.Complete = &CompleteView{
			Icon:    IconSuccess,
			Message: MessageComplete,
			Lines: progress.Summarize(sel.Items, progress.Explorer{
				BaseURL: c.config.BlockExplorerBaseURL,
				Name:    c.config.BlockExplorerName,
			}),
			Close: Affordance{Label: LabelClose},
		}
	}

	if sel.Visible() {
		c.metrics.IncCounter(metrics.PhaseRendered, labels)
	}
	c.metrics.ObserveLatency(metrics.Render, time.Since(start), labels)

	return view
}

func (c *Checkout) header(ctx context.Context, in Input, chain types.Chain) *Header {
	h := &Header{
		ItemCount:  len(in.Items),
		Images:     links.CartImages(chain, in.Items, c.config.HeaderImageLimit),
		TotalPrice: in.TotalPrice,
		Currency:   in.Currency,
		Chain:      chain,
	}
	if in.Currency != nil {
		total := in.TotalPrice
		h.USD = pricing.USD(ctx, c.converter, in.Currency.Symbol, &total)
	}
	return h
}

func (c *Checkout) approval(ctx context.Context, tx *types.Transaction, sel progress.Selection, chain types.Chain, fields map[string]any) *ApprovalView {
	v := &ApprovalView{
		Stage:  sel.Stage,
		Button: Affordance{Label: LabelWaitApproval, Disabled: true, Loading: true},
	}

	switch sel.Stage {
	case progress.StageStarting:
		v.Loading = true
	case progress.StageAuth:
		v.SignIn = true
	case progress.StageSingle:
		v.Title = TitleConfirmWallet
		v.Icon = IconWallet
		v.TransactionCount = sel.TransactionCount
	case progress.StageSplit:
		paths := progress.BuildPathMap(tx.Path)
		if dups := progress.IndexPath(tx.Path).Duplicates(tx.Path); len(dups) > 0 {
			c.logger.Warn("path entries share an order id, keeping the last", logger.Fields(fields, map[string]any{"orders": dups}))
			c.metrics.IncCounter(metrics.PathDuplicateOrder, map[string]string{"phase": sel.Phase.String()})
		}

		v.Title = TitleApprove
		v.Caption = progress.SplitCaption(sel.TransactionCount)
		v.TransactionCount = sel.TransactionCount
		v.Groups = progress.GroupApprovals(ctx, sel.Items, paths, progress.GroupOptions{
			Chain:     chain,
			Converter: c.converter,
		})
	}

	return v
}
