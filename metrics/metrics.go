package metrics

import "time"

// Counter and latency names emitted by the controller.
const (
	PhaseRendered      = "phase_rendered"
	PhaseUnrecognized  = "phase_unrecognized"
	PhaseRegressed     = "phase_regressed"
	PathDuplicateOrder = "path_duplicate_order"
	SnapshotDropped    = "snapshot_dropped"
	Render             = "render"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// NoopRecorder drops everything. It is the controller's default.
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
