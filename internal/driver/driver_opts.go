package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

// WithFinalTick ticks every manager once more when the driver stops. A
// Finalizer gets Final instead.
func WithFinalTick() DriverOpt {
	return func(d *Driver) {
		d.finalTick = true
	}
}
