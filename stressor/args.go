package stressor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// ErrNoResource marks a run that must be skipped rather than failed:
// the selected method is unsupported on this CPU, or a required memory
// mapping could not be obtained. Stressors wrap it with context.
var ErrNoResource = errors.New("resource not available")

// State tracks where a stressor instance is in its lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateConfigured
	StateRunning
	StateDeinit
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateDeinit:
		return "deinit"
	default:
		return "unknown"
	}
}

// Status is the terminal outcome of one stressor instance.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name, for reading reports back.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*s = StatusSuccess
	case "failure":
		*s = StatusFailure
	case "skipped":
		*s = StatusSkipped
	default:
		return fmt.Errorf("unknown status %q", text)
	}

	return nil
}

// StatusFor maps a run error to a terminal status.
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrNoResource):
		return StatusSkipped
	default:
		return StatusFailure
	}
}

// Args carries everything one stressor instance needs from the harness.
// Each instance owns its Args and Metrics exclusively; instances never
// share mutable state.
type Args struct {
	Name     string
	Instance int
	Verify   bool
	Logger   *slog.Logger
	Settings *Settings
	Metrics  *Metrics

	ctx    context.Context
	maxOps uint64
	ops    atomic.Uint64
	state  atomic.Int32
}

// NewArgs builds the per-instance harness arguments. maxOps of zero
// means no bogo-op limit; the context carries any deadline.
func NewArgs(
	ctx context.Context,
	name string,
	instance int,
	verify bool,
	maxOps uint64,
	logger *slog.Logger,
	settings *Settings,
) *Args {
	return &Args{
		Name:     name,
		Instance: instance,
		Verify:   verify,
		Logger: logger.With(
			slog.String("stressor", name),
			slog.Int("instance", instance),
		),
		Settings: settings,
		Metrics:  &Metrics{},
		ctx:      ctx,
		maxOps:   maxOps,
	}
}

// Continue reports whether the harness wants the run loop to keep going.
// Stressors check it once per completed sweep, never mid-sweep.
func (a *Args) Continue() bool {
	if a.ctx != nil && a.ctx.Err() != nil {
		return false
	}

	return a.maxOps == 0 || a.ops.Load() < a.maxOps
}

// BogoInc counts one completed unit of work.
func (a *Args) BogoInc() {
	a.ops.Add(1)
}

// BogoOps returns the number of completed work units.
func (a *Args) BogoOps() uint64 {
	return a.ops.Load()
}

// SetState records a lifecycle transition.
func (a *Args) SetState(s State) {
	a.state.Store(int32(s))
}

// State returns the current lifecycle state.
func (a *Args) State() State {
	return State(a.state.Load())
}
