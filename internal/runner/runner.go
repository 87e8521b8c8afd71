// Package runner implements the host loop that drives a machine at a fixed
// instruction rate.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrInvalidRate is returned for a negative instruction rate.
var ErrInvalidRate = errors.New("invalid instruction rate")

// Machine is the part of the machine that the runner drives.
type Machine interface {
	Tick() (chip8.Status, error)
	ResumeWithKey(key uint8) error
}

// Config configures the runner.
type Config struct {
	Hz        int             // ticks per second, 0 runs unthrottled
	MaxCycles uint64          // stop after this many ticks, 0 runs until cancelled
	Keys      <-chan uint8    // key presses that resume a machine waiting for a key
	Quit      <-chan struct{} // closed by the host to stop the loop
	Logger    *log.Logger
}

// Runner ticks a machine until the context is cancelled, the host quits,
// the cycle limit is reached or an instruction fails.
type Runner struct {
	machine  Machine
	interval time.Duration
	cfg      Config
	logger   *log.Logger

	status chip8.Status
	ticks  uint64
}

// New returns a new runner for the machine.
func New(machine Machine, cfg Config) (*Runner, error) {
	if cfg.Hz < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, cfg.Hz)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	r := &Runner{
		machine: machine,
		cfg:     cfg,
		logger:  logger,
	}
	if cfg.Hz > 0 {
		r.interval = time.Second / time.Duration(cfg.Hz)
	}
	return r, nil
}

// Run executes the loop. It returns nil when the cycle limit is reached or
// the host quits and the context error when the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.interval == 0 {
		return r.runUnthrottled(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-r.cfg.Quit:
			r.logger.Debug("Host requested stop", log.Uint64("ticks", r.ticks))
			return nil

		case key := <-r.cfg.Keys:
			if err := r.handleKey(key); err != nil {
				return err
			}

		case <-ticker.C:
			done, err := r.tick()
			if err != nil || done {
				return err
			}
		}
	}
}

// Ticks returns the number of ticks run so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

func (r *Runner) runUnthrottled(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.cfg.Quit:
			return nil
		case key := <-r.cfg.Keys:
			if err := r.handleKey(key); err != nil {
				return err
			}
		default:
		}

		done, err := r.tick()
		if err != nil || done {
			return err
		}
	}
}

// tick runs one machine tick and reports whether the cycle limit is
// reached.
func (r *Runner) tick() (bool, error) {
	status, err := r.machine.Tick()
	if err != nil {
		return false, fmt.Errorf("tick %d: %w", r.ticks, err)
	}
	r.ticks++

	if status != r.status {
		r.logger.Debug("Machine status changed",
			log.String("status", status.String()),
			log.Uint64("ticks", r.ticks))
		r.status = status
	}

	if r.cfg.MaxCycles > 0 && r.ticks >= r.cfg.MaxCycles {
		r.logger.Debug("Cycle limit reached", log.Uint64("ticks", r.ticks))
		return true, nil
	}
	return false, nil
}

// handleKey resumes a machine that waits for a key. Presses while the
// machine is running are dropped.
func (r *Runner) handleKey(key uint8) error {
	if r.status != chip8.StatusAwaitingKey {
		return nil
	}

	if err := r.machine.ResumeWithKey(key); err != nil {
		return fmt.Errorf("resuming with key %X: %w", key, err)
	}
	r.status = chip8.StatusRunning
	return nil
}
