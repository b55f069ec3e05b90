// Package driver implements the kernel-resident half of the Wheeler
// bridge as an in-process component: the canonical gamepad state, the
// report channel that emits HID input reports, and the user-client
// selector interface the daemon talks to. The host's actual input stack
// is abstracted behind ReportSink.
package driver

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/wheeler-host/wheeler/gamepad"
)

// ReportSink is the host's input-report delivery entry point. Whatever it
// returns propagates to the caller of the triggering state update; the
// sender is expected to retry with its next sample, not with the same
// report.
type ReportSink func(report []byte) error

// Device owns the canonical gamepad state and the report channel.
// Requests may arrive concurrently, so the state is guarded by a mutex:
// single writer, copy-on-read.
type Device struct {
	mu     sync.Mutex
	state  gamepad.State
	ready  bool
	sink   ReportSink
	logger *slog.Logger
}

// New returns a stopped device with zeroed (neutral) state. A nil sink
// discards reports after packing.
func New(sink ReportSink, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{sink: sink, logger: logger}
}

// Start establishes the report delivery channel. Until Start succeeds,
// sending reports fails with ErrNotReady.
func (d *Device) Start() error {
	d.mu.Lock()
	d.ready = true
	d.mu.Unlock()
	d.logger.Debug("report channel established", "reportSize", gamepad.ReportSize)
	return nil
}

// Stop tears the report channel down; the device keeps its state but
// reverts to the not-ready condition.
func (d *Device) Stop() {
	d.mu.Lock()
	d.ready = false
	d.mu.Unlock()
	d.logger.Debug("report channel released")
}

// UpdateState replaces the canonical state wholesale from its packed form
// and immediately packs and sends an input report. The buffer must be
// exactly gamepad.StateSize bytes; on a size mismatch the state is left
// untouched. A delivery failure does not roll the state back.
func (d *Device) UpdateState(buf []byte) error {
	if len(buf) != gamepad.StateSize {
		return fmt.Errorf("%w: state size %d, want %d", ErrBadArgument, len(buf), gamepad.StateSize)
	}

	d.mu.Lock()
	var next gamepad.State
	if err := next.UnmarshalBinary(buf); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	d.state = next
	d.mu.Unlock()

	return d.SendCurrentReport()
}

// GetState returns a verbatim packed copy of the current state. Pure
// read; it cannot fail.
func (d *Device) GetState() []byte {
	d.mu.Lock()
	st := d.state
	d.mu.Unlock()
	buf, _ := st.MarshalBinary()
	return buf
}

// SendCurrentReport packs the current state into an input report and
// hands it to the sink. Used both on every state update and when the host
// polls for a report. Each delivery gets its own report slice; concurrent
// updates cannot tear a report already handed out.
func (d *Device) SendCurrentReport() error {
	d.mu.Lock()
	if !d.ready {
		d.mu.Unlock()
		return ErrNotReady
	}
	report := d.state.BuildReport()
	sink := d.sink
	d.mu.Unlock()

	if sink == nil {
		return nil
	}
	return sink(report)
}
