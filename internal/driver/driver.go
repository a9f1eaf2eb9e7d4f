package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is ticked once per driver tick.
type Manager interface {
	Tick(context.Context) error
}

// Finalizer is a Manager with work to finish when the driver stops. With a
// final tick configured, Final runs in place of that manager's last Tick.
type Finalizer interface {
	Final(context.Context) error
}

// Driver ticks its managers on a fixed interval.
type Driver struct {
	tickLength time.Duration
	finalTick  bool
	managers   []Manager
}

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

// Start ticks until ctx is cancelled or a manager fails. With a final tick
// configured, managers get one more tick on shutdown, or Final for a
// Finalizer.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if d.finalTick {
				slog.InfoContext(ctx, "running final tick")
				return d.final(context.WithoutCancel(ctx))
			}
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) final(ctx context.Context) error {
	for _, m := range d.managers {
		var err error
		if f, ok := m.(Finalizer); ok {
			err = f.Final(ctx)
		} else {
			err = m.Tick(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
