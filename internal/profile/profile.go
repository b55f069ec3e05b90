// Package profile holds the runtime mapping profile: how raw control
// values translate into gamepad axes. Profiles live in a TOML file and
// can be hot-reloaded while the daemon runs.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml"

	"github.com/wheeler-host/wheeler/gamepad"
)

// Profile is the user-tunable translation profile.
type Profile struct {
	// MaxSteerAngle is the full-lock steering angle in degrees.
	MaxSteerAngle float64 `toml:"max_steer_angle"`
	// Deadzone zeroes stick axes below this magnitude (0..1).
	Deadzone float64 `toml:"deadzone"`
	// InvertSteering flips the steering axis.
	InvertSteering bool `toml:"invert_steering"`
}

// Default matches the original Wheeler translation.
func Default() Profile {
	return Profile{MaxSteerAngle: gamepad.MaxSteerAngle}
}

// Mapping converts the profile to the gamepad translation parameters.
func (p Profile) Mapping() gamepad.Mapping {
	return gamepad.Mapping{
		MaxSteerAngle:  p.MaxSteerAngle,
		Deadzone:       p.Deadzone,
		InvertSteering: p.InvertSteering,
	}
}

func (p Profile) validate() error {
	if p.MaxSteerAngle <= 0 {
		return fmt.Errorf("max_steer_angle must be positive, got %v", p.MaxSteerAngle)
	}
	if p.Deadzone < 0 || p.Deadzone >= 1 {
		return fmt.Errorf("deadzone must be in [0,1), got %v", p.Deadzone)
	}
	return nil
}

// Load reads and validates a profile file. Numeric fields accept both
// TOML integers and floats; a hand-written "max_steer_angle = 540" is as
// valid as "540.0".
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	p := Default()
	if err := readFloat(tree, "max_steer_angle", &p.MaxSteerAngle); err != nil {
		return Profile{}, err
	}
	if err := readFloat(tree, "deadzone", &p.Deadzone); err != nil {
		return Profile{}, err
	}
	if v := tree.Get("invert_steering"); v != nil {
		b, ok := v.(bool)
		if !ok {
			return Profile{}, fmt.Errorf("parse profile: invert_steering must be a boolean, got %T", v)
		}
		p.InvertSteering = b
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

func readFloat(tree *toml.Tree, key string, dst *float64) error {
	v := tree.Get(key)
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		*dst = n
	case int64:
		*dst = float64(n)
	default:
		return fmt.Errorf("parse profile: %s must be a number, got %T", key, v)
	}
	return nil
}

// Store holds the active profile and swaps it atomically on reload.
type Store struct {
	current atomic.Value // Profile
}

// NewStore returns a store seeded with p.
func NewStore(p Profile) *Store {
	s := &Store{}
	s.current.Store(p)
	return s
}

// Current returns the active profile.
func (s *Store) Current() Profile {
	return s.current.Load().(Profile)
}

// Watch re-loads the profile whenever the file changes, until ctx ends.
// A reload that fails to parse or validate keeps the previous profile.
// Editors replace files rather than writing in place, so the watch is on
// the parent directory, filtered to the profile's name.
func (s *Store) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("profile watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	name := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			p, err := Load(path)
			if err != nil {
				logger.Warn("profile reload failed, keeping previous", "path", path, "error", err)
				continue
			}
			s.current.Store(p)
			logger.Info("profile reloaded", "path", path,
				"maxSteerAngle", p.MaxSteerAngle, "deadzone", p.Deadzone, "invertSteering", p.InvertSteering)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("profile watcher error", "error", err)
		}
	}
}
