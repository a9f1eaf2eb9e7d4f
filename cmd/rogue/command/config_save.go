package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/savegame"
	"github.com/redis/go-redis/v9"
)

const (
	SaveBackendFile  = "file"
	SaveBackendRedis = "redis"
)

type SaveConfig struct {
	// Backend is "file" (the default) or "redis".
	Backend string `json:"backend"`

	Path  string           `json:"path"`
	Redis *RedisSaveConfig `json:"redis,omitempty"`

	// AutosaveTicks is how many driver ticks pass between autosaves.
	AutosaveTicks int `json:"autosave_ticks"`
}

type RedisSaveConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	Key      string `json:"key,omitempty"`
}

func (c *SaveConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "", SaveBackendFile:
		if c.Path == "" {
			el.Add(fmt.Errorf("save path is required"))
		} else if _, err := os.Stat(filepath.Dir(c.Path)); err != nil {
			el.Add(fmt.Errorf("save directory: %w", err))
		}
	case SaveBackendRedis:
		if c.Redis == nil || c.Redis.Addr == "" {
			el.Add(fmt.Errorf("save redis addr is required"))
		}
	default:
		el.Add(fmt.Errorf("unknown save backend %q", c.Backend))
	}
	if c.AutosaveTicks < 0 {
		el.Add(fmt.Errorf("autosave_ticks must not be negative"))
	}

	return el.Err()
}

func (c *SaveConfig) buildStore() savegame.Store {
	if c.Backend == SaveBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		return savegame.NewRedisStore(client, c.Redis.Key)
	}
	return savegame.NewFileStore(c.Path)
}
