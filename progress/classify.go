// Package progress interprets checkout transaction snapshots: which phase the
// dialog is in, which path entries belong to which orders, and how many
// wallet confirmations are left.
package progress

import "github.com/vitwit/cartcheckout/types"

// Phase is the dialog phase derived from a snapshot status.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseApproving
	PhaseFinalizing
	PhaseComplete
)

var phaseNames = map[Phase]string{
	PhaseNone:       "none",
	PhaseApproving:  "approving",
	PhaseFinalizing: "finalizing",
	PhaseComplete:   "complete",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Stage narrows PhaseApproving.
type Stage int

const (
	StageNone Stage = iota
	// engine has not started a step yet
	StageStarting
	// wallet must sign in
	StageAuth
	// a single wallet confirmation
	StageSingle
	// one confirmation per step item
	StageSplit
)

var stageNames = map[Stage]string{
	StageNone:     "none",
	StageStarting: "starting",
	StageAuth:     "auth",
	StageSingle:   "single",
	StageSplit:    "split",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Selection is the classifier's verdict for one snapshot.
type Selection struct {
	Phase Phase
	Stage Stage

	// Status as received, kept for reporting.
	Status types.Status

	// False when the snapshot carried a non-empty status that maps to no
	// phase. An empty status is "nothing yet", not a defect.
	Recognized bool

	// Wallet confirmations required by the current step. Set for
	// StageSingle (1) and StageSplit (len(items)).
	TransactionCount int

	// Items of the current step, shared with the snapshot.
	Items []types.StepItem
}

// Visible reports whether any phase content should be rendered.
func (s Selection) Visible() bool {
	return s.Phase != PhaseNone
}

// Classify selects exactly one phase for the snapshot. It trusts the status
// as given and never checks that phases progress in order.
func Classify(tx *types.Transaction) Selection {
	if tx == nil || tx.Status == "" {
		return Selection{Recognized: true}
	}

	sel := Selection{Status: tx.Status, Recognized: true}

	switch tx.Status {
	case types.StatusApproving:
		sel.Phase = PhaseApproving
		classifyApproval(tx.CurrentStep, &sel)
	case types.StatusFinalizing:
		sel.Phase = PhaseFinalizing
	case types.StatusComplete:
		sel.Phase = PhaseComplete
		if tx.CurrentStep != nil {
			sel.Items = tx.CurrentStep.Items
		}
	case types.StatusIdle, types.StatusError:
		// valid engine states the dialog does not render
	default:
		sel.Recognized = false
	}

	return sel
}

func classifyApproval(step *types.Step, sel *Selection) {
	switch {
	case step == nil:
		sel.Stage = StageStarting
	case step.ID == types.StepAuth:
		sel.Stage = StageAuth
	case len(step.Items) > 1:
		sel.Stage = StageSplit
		sel.Items = step.Items
		sel.TransactionCount = len(step.Items)
	default:
		sel.Stage = StageSingle
		sel.Items = step.Items
		sel.TransactionCount = 1
	}
}
