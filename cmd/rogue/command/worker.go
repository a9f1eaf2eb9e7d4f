package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/driver"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/messaging"
	"github.com/pixil98/go-rogue/internal/savegame"
	"github.com/pixil98/go-rogue/internal/world"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	store := cfg.Save.buildStore()
	session, err := loadOrCreate(context.Background(), cfg, dict, store)
	if err != nil {
		return nil, err
	}
	host := world.NewHost(session)

	server, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	saver := savegame.NewAutoSaver(host, store, cfg.Save.AutosaveTicks)
	api := messaging.NewSessionAPI(host, saver, messaging.NewEventPublisher(server))

	// Setup the driver; the final tick writes a last save on shutdown
	d := driver.NewDriver([]driver.Manager{
		saver,
	}, driver.WithTickLength(cfg.tickLength()), driver.WithFinalTick())

	return service.WorkerList{
		"driver": d,
		"nats":   server,
		"api":    api.Worker(server),
	}, nil
}

// loadOrCreate resumes the saved game, or starts a new one when there is no
// save. A save that exists but cannot be read stops startup so it is not
// overwritten.
func loadOrCreate(ctx context.Context, cfg *Config, dict *game.Dictionary, store savegame.Store) (*world.Session, error) {
	session, err := store.Load(ctx)
	switch {
	case err == nil:
		table, err := dict.SpawnTable()
		if err != nil {
			return nil, fmt.Errorf("building spawn table: %w", err)
		}
		session.SetSpawnTable(table)
		slog.Info("resumed saved game", "store", fmt.Sprint(store), "depth", session.Depth())
		return session, nil

	case errors.Is(err, savegame.ErrNoSave):
		session, err := world.NewGame(dict, cfg.Dungeon.params(), cfg.Dungeon.buildRNG())
		if err != nil {
			return nil, fmt.Errorf("starting new game: %w", err)
		}
		slog.Info("started new game", "player", session.Player.Id)
		return session, nil

	default:
		return nil, fmt.Errorf("loading save: %w", err)
	}
}
