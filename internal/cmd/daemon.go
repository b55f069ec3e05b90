package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wheeler-host/wheeler/driver"
	"github.com/wheeler-host/wheeler/internal/configpaths"
	"github.com/wheeler-host/wheeler/internal/daemon"
	"github.com/wheeler-host/wheeler/internal/log"
	"github.com/wheeler-host/wheeler/internal/profile"
)

// Daemon runs the bridge: UDP control packets in, virtual gamepad state
// and HID input reports out.
type Daemon struct {
	daemon.Config `embed:""`

	Profile      string `help:"Mapping profile file (TOML; default: profile.toml in the config dir)" env:"WHEELER_PROFILE"`
	WatchProfile bool   `help:"Reload the mapping profile when the file changes" default:"true" negatable:"" env:"WHEELER_WATCH_PROFILE"`
}

// Run is called by Kong when the daemon command is executed.
func (d *Daemon) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Start(ctx, logger, rawLogger)
}

// Start wires the driver, the profile store and the transport loop, and
// runs until ctx is cancelled.
func (d *Daemon) Start(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	store, profilePath, err := d.loadProfile(logger)
	if err != nil {
		return err
	}

	dev := driver.New(func(report []byte) error {
		rawLogger.Log(log.DirDriverToHID, report)
		return nil
	}, logger)
	if err := dev.Start(); err != nil {
		return err
	}
	defer dev.Stop()

	logger.Info("starting wheeler bridge daemon", "addr", d.Config.Addr)

	if d.WatchProfile && profilePath != "" {
		go func() {
			if err := store.Watch(ctx, profilePath, logger); err != nil {
				logger.Warn("profile watching disabled", "error", err)
			}
		}()
	}

	dm := daemon.New(d.Config, driver.Open(dev), store, logger, rawLogger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- dm.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// loadProfile resolves and loads the mapping profile. An explicitly named
// profile must load; the default location is optional.
func (d *Daemon) loadProfile(logger *slog.Logger) (*profile.Store, string, error) {
	path := d.Profile
	explicit := path != ""
	if !explicit {
		if p, err := configpaths.DefaultProfilePath(); err == nil {
			path = p
		}
	}
	if path == "" {
		return profile.NewStore(profile.Default()), "", nil
	}

	p, err := profile.Load(path)
	switch {
	case err == nil:
		logger.Info("mapping profile loaded", "path", path,
			"maxSteerAngle", p.MaxSteerAngle, "deadzone", p.Deadzone, "invertSteering", p.InvertSteering)
		return profile.NewStore(p), path, nil
	case explicit:
		return nil, "", err
	default:
		logger.Debug("no mapping profile, using defaults", "path", path)
		return profile.NewStore(profile.Default()), path, nil
	}
}
