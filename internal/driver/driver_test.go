package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks atomic.Int32
	err   error
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		errAt     int // index of the failing manager, -1 for none
		expTicked []int32
		expErr    bool
	}{
		"all managers ticked": {errAt: -1, expTicked: []int32{1, 1, 1}},
		"stops at failure":    {errAt: 1, expTicked: []int32{1, 1, 0}, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ms := []*countingManager{{}, {}, {}}
			managers := make([]Manager, len(ms))
			for i, m := range ms {
				if i == tt.errAt {
					m.err = errors.New("boom")
				}
				managers[i] = m
			}

			err := NewDriver(managers).Tick(context.Background())
			testutil.AssertEqual(t, "err", err != nil, tt.expErr)
			for i, m := range ms {
				testutil.AssertEqual(t, "ticks", m.ticks.Load(), tt.expTicked[i])
			}
		})
	}
}

func TestDriver_Start(t *testing.T) {
	tests := map[string]struct {
		opts     []DriverOpt
		expFinal bool
	}{
		"no final tick":   {},
		"with final tick": {opts: []DriverOpt{WithFinalTick()}, expFinal: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := &countingManager{}
			opts := append([]DriverOpt{WithTickLength(time.Hour)}, tt.opts...)
			d := NewDriver([]Manager{m}, opts...)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := d.Start(ctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			exp := int32(0)
			if tt.expFinal {
				exp = 1
			}
			testutil.AssertEqual(t, "ticks", m.ticks.Load(), exp)
		})
	}
}

func TestDriver_Start_ManagerError(t *testing.T) {
	m := &countingManager{err: errors.New("boom")}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "boom")
}

type finalizingManager struct {
	countingManager
	finals int
}

func (m *finalizingManager) Final(context.Context) error {
	m.finals++
	return nil
}

func TestDriver_Start_Finalizer(t *testing.T) {
	plain := &countingManager{}
	fin := &finalizingManager{}
	d := NewDriver([]Manager{plain, fin}, WithTickLength(time.Hour), WithFinalTick())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "plain ticks", plain.ticks.Load(), int32(1))
	testutil.AssertEqual(t, "finalizer ticks", fin.ticks.Load(), int32(0))
	testutil.AssertEqual(t, "finals", fin.finals, 1)
}
