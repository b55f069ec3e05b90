package cmd

import (
	"context"
	"log/slog"
	"math"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wheeler-host/wheeler/protocol"
)

// Send is a smoke client: it streams control packets at a running daemon,
// sweeping the steering axis lock-to-lock, so the virtual pad can be
// watched moving without a phone attached.
type Send struct {
	Target   string        `help:"Daemon control address" default:"127.0.0.1:12000" env:"WHEELER_SEND_TARGET"`
	Interval time.Duration `help:"Packet interval" default:"10ms"`
	Duration time.Duration `help:"How long to stream (0 = until interrupted)" default:"5s"`
	Throttle float32       `help:"Constant throttle value (0-1)" default:"0"`
	Brake    float32       `help:"Constant brake value (0-1)" default:"0"`
	Sweep    bool          `help:"Sweep steering lock-to-lock; off sends a centered wheel" default:"true" negatable:""`
	Buttons  uint32        `help:"Button bitmask to hold down" default:"0"`
}

// Run is called by Kong when the send command is executed.
func (s *Send) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := net.Dial("udp", s.Target)
	if err != nil {
		return err
	}
	defer conn.Close()

	if s.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Duration)
		defer cancel()
	}

	logger.Info("streaming control packets", "target", s.Target, "interval", s.Interval.String())

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	start := time.Now()
	sent := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("done", "packets", sent)
			return nil
		case <-ticker.C:
		}

		pkt := protocol.ControlPacket{
			Throttle: s.Throttle,
			Brake:    s.Brake,
			Buttons:  s.Buttons,
		}
		if s.Sweep {
			// One full lock-to-lock cycle every two seconds.
			t := time.Since(start).Seconds()
			pkt.SteerAngle = float32(math.Sin(t*math.Pi) * 900)
		}

		buf, err := pkt.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := conn.Write(buf); err != nil {
			return err
		}
		sent++
	}
}
