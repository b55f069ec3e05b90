// Package daemon implements the user-space half of the Wheeler bridge:
// it owns the UDP control socket and the connection to the driver, and
// pushes every decoded control sample into the driver as a full state
// replacement.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/wheeler-host/wheeler/driver"
	"github.com/wheeler-host/wheeler/gamepad"
	"github.com/wheeler-host/wheeler/internal/log"
	"github.com/wheeler-host/wheeler/internal/profile"
	"github.com/wheeler-host/wheeler/protocol"
)

// DefaultAddr is the control protocol's well-known UDP endpoint.
const DefaultAddr = ":12000"

type Config struct {
	Addr string `help:"UDP listen address for control packets" default:":12000" env:"WHEELER_ADDR"`
	// PollInterval bounds how long one loop iteration may block in the
	// socket read, and therefore the worst-case shutdown latency.
	PollInterval time.Duration `help:"Socket poll interval" default:"1ms" env:"WHEELER_POLL_INTERVAL"`
	// FailureLogEvery throttles driver-push failure logging to every Nth
	// consecutive failure.
	FailureLogEvery int `help:"Log every Nth consecutive driver failure" default:"1000" env:"WHEELER_FAILURE_LOG_EVERY"`
}

// Daemon is the transport loop. It is single-threaded: one goroutine
// receives, decodes, converts and forwards, one packet at a time.
type Daemon struct {
	config    Config
	conn      driver.Conn
	profiles  *profile.Store
	logger    *slog.Logger
	rawLogger log.RawLogger
	ready     chan struct{}
	readyOnce sync.Once

	mu sync.Mutex
	pc net.PacketConn
}

// New returns a daemon pushing to conn using the profiles store for
// translation parameters.
func New(config Config, conn driver.Conn, profiles *profile.Store, logger *slog.Logger, rawLogger log.RawLogger) *Daemon {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Millisecond
	}
	if config.FailureLogEvery <= 0 {
		config.FailureLogEvery = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	if profiles == nil {
		profiles = profile.NewStore(profile.Default())
	}
	return &Daemon{
		config:    config,
		conn:      conn,
		profiles:  profiles,
		logger:    logger,
		rawLogger: rawLogger,
		ready:     make(chan struct{}),
	}
}

// Ready returns a channel that is closed once the daemon has bound its
// socket and entered the receive loop.
func (d *Daemon) Ready() <-chan struct{} { return d.ready }

// LocalAddr returns the bound socket address, or nil before Ready.
func (d *Daemon) LocalAddr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pc == nil {
		return nil
	}
	return d.pc.LocalAddr()
}

// Run binds the control socket and processes datagrams until ctx is
// cancelled. Driver push failures are transient: they are logged at a
// throttled rate and the loop keeps receiving. The socket and the driver
// connection are released on exit.
func (d *Daemon) Run(ctx context.Context) error {
	lc := net.ListenConfig{Control: reuseAddr}
	pc, err := lc.ListenPacket(ctx, "udp", d.config.Addr)
	if err != nil {
		return err
	}
	defer pc.Close()
	defer d.conn.Close()

	d.mu.Lock()
	d.pc = pc
	d.mu.Unlock()
	d.readyOnce.Do(func() { close(d.ready) })
	d.logger.Info("listening for control packets", "addr", pc.LocalAddr().String())

	// Oversized datagrams must be seen at their full length to be
	// rejected, so the buffer is larger than a control packet.
	buf := make([]byte, 2*protocol.PacketSize)
	failures := 0

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("control loop stopped")
			return nil
		default:
		}

		_ = pc.SetReadDeadline(time.Now().Add(d.config.PollInterval))
		n, _, err := pc.ReadFrom(buf)
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			d.logger.Error("socket read failed", "error", err)
			continue
		}

		d.rawLogger.Log(log.DirNetToDriver, buf[:n])
		if n != protocol.PacketSize {
			d.logger.Log(ctx, log.LevelTrace, "discarding datagram", "size", n, "want", protocol.PacketSize)
			continue
		}

		var pkt protocol.ControlPacket
		if err := pkt.UnmarshalBinary(buf[:n]); err != nil {
			continue
		}

		state := gamepad.FromPacket(&pkt, d.profiles.Current().Mapping())
		payload, err := state.MarshalBinary()
		if err != nil {
			continue
		}

		if _, err := d.conn.Call(driver.SelectorUpdateState, payload, 0); err != nil {
			failures++
			if failures%d.config.FailureLogEvery == 0 {
				d.logger.Warn("driver push failing", "error", err, "consecutive", failures)
			}
			continue
		}
		failures = 0
	}
}
