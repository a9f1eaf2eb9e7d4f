package savegame

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/world"
)

// AutoSaver writes the hosted session to its store every few ticks. It is
// driven as a driver.Manager.
type AutoSaver struct {
	host  *world.Host
	store Store
	every int
	ticks int
}

// NewAutoSaver saves every n ticks; n below 1 saves on every tick.
func NewAutoSaver(host *world.Host, store Store, n int) *AutoSaver {
	return &AutoSaver{host: host, store: store, every: max(n, 1)}
}

// Tick saves once every n ticks. A failed save is logged and retried on a
// later tick rather than stopping the driver.
func (a *AutoSaver) Tick(ctx context.Context) error {
	a.ticks++
	if a.ticks < a.every {
		return nil
	}
	a.ticks = 0

	if err := a.save(ctx); err != nil {
		slog.ErrorContext(ctx, "autosave failed", "store", fmt.Sprint(a.store), "error", err)
		return nil
	}
	slog.DebugContext(ctx, "autosaved", "store", fmt.Sprint(a.store))
	return nil
}

// Final saves regardless of the tick count. The driver calls it on shutdown
// so the last state reaches the store.
func (a *AutoSaver) Final(ctx context.Context) error {
	a.ticks = 0
	if err := a.save(ctx); err != nil {
		return fmt.Errorf("final save to %s: %w", fmt.Sprint(a.store), err)
	}
	slog.InfoContext(ctx, "saved on shutdown", "store", fmt.Sprint(a.store))
	return nil
}

// Save writes the session now.
func (a *AutoSaver) Save() error {
	return a.save(context.Background())
}

func (a *AutoSaver) save(ctx context.Context) error {
	return a.host.Do(func(s *world.Session) error {
		return a.store.Save(ctx, s)
	})
}
