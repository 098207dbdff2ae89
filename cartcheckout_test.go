package cartcheckout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/cartcheckout/pricing"
	"github.com/vitwit/cartcheckout/progress"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
)

type recordedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedLog
}

func (l *recordingLogger) add(level, msg string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedLog{level, msg, fields})
}

func (l *recordingLogger) Debug(msg string, f map[string]any) { l.add("debug", msg, f) }
func (l *recordingLogger) Info(msg string, f map[string]any)  { l.add("info", msg, f) }
func (l *recordingLogger) Warn(msg string, f map[string]any)  { l.add("warn", msg, f) }
func (l *recordingLogger) Error(msg string, f map[string]any) { l.add("error", msg, f) }

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == "warn" {
			out = append(out, e.msg)
		}
	}
	return out
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) IncCounter(name string, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[name]++
}

func (r *countingRecorder) ObserveLatency(string, time.Duration, map[string]string) {}

func open() *bool {
	b := true
	return &b
}

func testConfig() *types.CheckoutConfig {
	cfg := types.DefaultConfig()
	cfg.BlockExplorerBaseURL = "https://etherscan.io"
	cfg.Chain = types.Chain{ID: 1, Name: "mainnet", BaseAPIURL: "https://api.test"}
	return cfg
}

func cart() []types.CartItem {
	return []types.CartItem{
		{Token: types.Token{ID: "1"}, Collection: types.Collection{ID: "0xaaa"}},
		{Token: types.Token{ID: "2"}, Collection: types.Collection{ID: "0xbbb:set"}},
		{Token: types.Token{ID: "3"}, Collection: types.Collection{ID: "0xccc"}},
	}
}

func TestRenderSplitPurchase(t *testing.T) {
	q := decimal.RequireFromString("0.5")
	c := New(testConfig(), WithConverter(pricing.NewStaticRates(map[string]decimal.Decimal{"ETH": decimal.NewFromInt(2000)})))

	view := c.Render(context.Background(), Input{
		Items:      cart(),
		TotalPrice: decimal.RequireFromString("1.5"),
		Currency:   &types.Currency{Symbol: "ETH", Decimals: 18},
		Open:       open(),
		Transaction: &types.Transaction{
			Status: types.StatusApproving,
			CurrentStep: &types.Step{ID: "list-123", Items: []types.StepItem{
				{OrderIDs: types.OrderIDs{"o1"}},
				{OrderIDs: types.OrderIDs{"o2"}},
			}},
			Path: []types.PathEntry{
				{OrderID: "o1", Contract: "0xaaa", TokenID: "1", Source: "blur.io", CurrencySymbol: "ETH", Quote: &q},
			},
		},
	})

	require.True(t, view.Open)
	assert.Equal(t, progress.PhaseApproving, view.Phase)
	assert.Equal(t, TitleCheckout, view.Title)
	assert.True(t, view.PoweredBy)

	require.NotNil(t, view.Header)
	assert.Equal(t, 3, view.Header.ItemCount)
	assert.Len(t, view.Header.Images, 2)
	require.NotNil(t, view.Header.USD)
	assert.Equal(t, "3000", view.Header.USD.String())

	require.NotNil(t, view.Approval)
	a := view.Approval
	assert.Equal(t, progress.StageSplit, a.Stage)
	assert.Equal(t, TitleApprove, a.Title)
	assert.Contains(t, a.Caption, "split into 2 separate transactions.")
	assert.Equal(t, 2, a.TransactionCount)
	require.Len(t, a.Groups, 2)
	assert.Equal(t, []string{"blur.io"}, a.Groups[0].Marketplaces)
	assert.Empty(t, a.Groups[1].Entries)
	assert.Equal(t, Affordance{Label: LabelWaitApproval, Disabled: true, Loading: true}, a.Button)

	assert.Nil(t, view.Finalizing)
	assert.Nil(t, view.Complete)
}

func TestRenderApprovalStages(t *testing.T) {
	c := New(testConfig())

	view := c.Render(context.Background(), Input{Open: open(), Transaction: &types.Transaction{Status: types.StatusApproving}})
	require.NotNil(t, view.Approval)
	assert.True(t, view.Approval.Loading)
	assert.False(t, view.Approval.SignIn)
	assert.Empty(t, view.Approval.Title)

	view = c.Render(context.Background(), Input{Transaction: &types.Transaction{
		Status:      types.StatusApproving,
		CurrentStep: &types.Step{ID: types.StepAuth, Items: make([]types.StepItem, 3)},
	}})
	require.NotNil(t, view.Approval)
	assert.True(t, view.Approval.SignIn)
	assert.Empty(t, view.Approval.Groups)

	view = c.Render(context.Background(), Input{Transaction: &types.Transaction{
		Status:      types.StatusApproving,
		CurrentStep: &types.Step{ID: "sale", Items: make([]types.StepItem, 1)},
	}})
	require.NotNil(t, view.Approval)
	assert.Equal(t, TitleConfirmWallet, view.Approval.Title)
	assert.Equal(t, IconWallet, view.Approval.Icon)
	assert.True(t, view.Approval.Button.Disabled)
}

func TestRenderFinalizing(t *testing.T) {
	c := New(testConfig())
	view := c.Render(context.Background(), Input{
		Items:       cart(),
		Currency:    &types.Currency{Symbol: "ETH"},
		Open:        open(),
		Transaction: &types.Transaction{Status: types.StatusFinalizing},
	})

	require.NotNil(t, view.Finalizing)
	assert.Equal(t, TitleFinalizing, view.Finalizing.Title)
	assert.Equal(t, Affordance{Label: LabelWaitValidation, Disabled: true, Loading: true}, view.Finalizing.Button)
	require.NotNil(t, view.Header)
	// no converter configured, USD is omitted
	assert.Nil(t, view.Header.USD)
}

func TestRenderComplete(t *testing.T) {
	c := New(testConfig())
	view := c.Render(context.Background(), Input{
		Open: open(),
		Transaction: &types.Transaction{
			Status: types.StatusComplete,
			CurrentStep: &types.Step{ID: "sale", Items: []types.StepItem{
				{TxHash: "0xabc", OrderIDs: types.OrderIDs{"o1"}},
			}},
		},
	})

	require.NotNil(t, view.Complete)
	assert.Nil(t, view.Header)
	require.Len(t, view.Complete.Lines, 1)
	line := view.Complete.Lines[0]
	assert.Equal(t, "https://etherscan.io/tx/0xabc", line.URL)
	assert.Equal(t, 1, line.Count)
	assert.Equal(t, "item", line.Noun)
	assert.Equal(t, "View transaction for 1 item on Etherscan", line.Text)
	assert.False(t, view.Complete.Close.Disabled)

	session := view.Session
	c.Dismiss()
	assert.False(t, c.Dialog().Open())

	// the next tick with the same open prop stays closed
	view = c.Render(context.Background(), Input{Open: open(), Transaction: &types.Transaction{Status: types.StatusComplete}})
	assert.False(t, view.Open)
	assert.Nil(t, view.Complete)
	assert.Equal(t, session, view.Session)
}

func TestRenderParsedSnapshotWithoutStepID(t *testing.T) {
	tx, err := utils.ParseTransaction([]byte(`{"status":"complete","currentStep":{"items":[{"txHash":"0xabc","orderIds":["o1"]}]}}`))
	require.NoError(t, err)

	view := New(testConfig()).Render(context.Background(), Input{Open: open(), Transaction: tx})
	assert.Equal(t, progress.PhaseComplete, view.Phase)
	require.NotNil(t, view.Complete)
	require.Len(t, view.Complete.Lines, 1)
	assert.Equal(t, "https://etherscan.io/tx/0xabc", view.Complete.Lines[0].URL)
	assert.Equal(t, "View transaction for 1 item on Etherscan", view.Complete.Lines[0].Text)

	tx, err = utils.ParseTransaction([]byte(`{"status":"approving","currentStep":{}}`))
	require.NoError(t, err)
	view = New(testConfig()).Render(context.Background(), Input{Open: open(), Transaction: tx})
	require.NotNil(t, view.Approval)
	assert.Equal(t, progress.StageSingle, view.Approval.Stage)
	assert.Equal(t, TitleConfirmWallet, view.Approval.Title)
}

func TestRenderClosedDialogHasNoContent(t *testing.T) {
	c := New(testConfig())
	view := c.Render(context.Background(), Input{Transaction: &types.Transaction{Status: types.StatusFinalizing}})

	assert.False(t, view.Open)
	assert.Equal(t, progress.PhaseFinalizing, view.Phase)
	assert.Nil(t, view.Header)
	assert.Nil(t, view.Finalizing)
}

func TestPreviewLeavesDialogAlone(t *testing.T) {
	c := New(testConfig())
	tx := &types.Transaction{Status: types.StatusFinalizing}

	view := c.Preview(context.Background(), Input{Transaction: tx})
	assert.True(t, view.Open)
	assert.Empty(t, view.Session)
	require.NotNil(t, view.Finalizing)
	assert.False(t, c.Dialog().Open())

	closed := false
	view = c.Preview(context.Background(), Input{Open: &closed, Transaction: tx})
	assert.False(t, view.Open)
	assert.Nil(t, view.Finalizing)

	// a closed preview does not blank the next one
	view = c.Preview(context.Background(), Input{Transaction: tx})
	assert.NotNil(t, view.Finalizing)
}

func TestRenderReportsUnrecognizedStatus(t *testing.T) {
	log := &recordingLogger{}
	rec := &countingRecorder{}
	c := New(testConfig(), WithLogger(log), WithMetrics(rec))

	view := c.Render(context.Background(), Input{Open: open(), Transaction: &types.Transaction{Status: "refunding"}})

	assert.Equal(t, progress.PhaseNone, view.Phase)
	assert.Nil(t, view.Approval)
	assert.Nil(t, view.Finalizing)
	assert.Nil(t, view.Complete)
	assert.Contains(t, log.warnings(), "unrecognized checkout status")
	assert.Equal(t, 1, rec.counts["phase_unrecognized"])
	assert.Zero(t, rec.counts["phase_rendered"])
}

func TestRenderReportsRegressionAndDuplicates(t *testing.T) {
	log := &recordingLogger{}
	rec := &countingRecorder{}
	c := New(testConfig(), WithLogger(log), WithMetrics(rec))

	c.Render(context.Background(), Input{Key: "cart-1", Open: open(), Transaction: &types.Transaction{Status: types.StatusComplete}})
	view := c.Render(context.Background(), Input{Key: "cart-1", Transaction: &types.Transaction{
		Status: types.StatusApproving,
		CurrentStep: &types.Step{ID: "sale", Items: []types.StepItem{
			{OrderIDs: types.OrderIDs{"o1"}},
			{OrderIDs: types.OrderIDs{"o2"}},
		}},
		Path: []types.PathEntry{
			{OrderID: "o1", Contract: "0xaaa", TokenID: "1"},
			{OrderID: "o1", Contract: "0xbbb", TokenID: "2"},
		},
	}})

	// the latest status is rendered as is
	assert.Equal(t, progress.PhaseApproving, view.Phase)
	require.NotNil(t, view.Approval)
	require.Len(t, view.Approval.Groups[0].Entries, 1)
	assert.Equal(t, "0xbbb", view.Approval.Groups[0].Entries[0].Contract)

	warnings := log.warnings()
	assert.Contains(t, warnings, "checkout phase moved backwards")
	assert.Contains(t, warnings, "path entries share an order id, keeping the last")
	assert.Equal(t, 1, rec.counts["phase_regressed"])
	assert.Equal(t, 1, rec.counts["path_duplicate_order"])
	assert.Equal(t, 2, rec.counts["phase_rendered"])
}

func TestRenderDoesNotShareSnapshot(t *testing.T) {
	c := New(testConfig())
	tx := &types.Transaction{
		Status: types.StatusComplete,
		CurrentStep: &types.Step{ID: "sale", Items: []types.StepItem{
			{TxHash: "0x1", OrderIDs: types.OrderIDs{"a", "b"}},
		}},
	}

	view := c.Render(context.Background(), Input{Open: open(), Transaction: tx})
	tx.CurrentStep.Items[0].TxHash = "0x2"
	tx.CurrentStep.Items[0].OrderIDs[0] = "z"

	require.Len(t, view.Complete.Lines, 1)
	assert.Equal(t, "0x1", view.Complete.Lines[0].TxHash)
	assert.Equal(t, 2, view.Complete.Lines[0].Count)
}

func TestOnOpenChangeClosesContainer(t *testing.T) {
	closed := false
	c := New(nil, WithOnClose(func() { closed = true }))

	c.OnOpenChange(true)
	assert.True(t, c.Dialog().Open())
	c.OnOpenChange(false)
	assert.True(t, closed)
	assert.NotNil(t, c.Config())
}

func TestPoweredByCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.DisablePoweredBy = true
	view := New(cfg).Render(context.Background(), Input{})
	assert.False(t, view.PoweredBy)
	assert.Equal(t, progress.PhaseNone, view.Phase)
}

func TestNewFromConfigTwiceWithMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMetrics = true
	cfg.LogLevel = "error"

	assert.NotPanics(t, func() {
		NewFromConfig(cfg)
		NewFromConfig(cfg)
	})
}
