package driver

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is anything that needs periodic work, such as health regeneration.
type Manager interface {
	Tick(context.Context) error
}

// Driver ticks its managers on a fixed interval until the context is canceled.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

// NewDriver creates a Driver ticking every DefaultTickLength.
func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until ctx is canceled or a manager fails.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs every manager once, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("ticking manager %d: %w", i, err)
		}
	}
	return nil
}
