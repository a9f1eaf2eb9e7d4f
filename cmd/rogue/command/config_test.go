package command

import (
	"path/filepath"
	"testing"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/procgen"
	"github.com/pixil98/go-testutil"
)

func validConfig(dir string) Config {
	return Config{
		TickInterval: "5s",
		Storage: StorageConfig{
			Actors: AssetConfig[*game.ActorTemplate]{Path: dir},
			Items:  AssetConfig[*game.ItemTemplate]{Path: dir},
		},
		Save: SaveConfig{Path: filepath.Join(dir, "game.sav"), AutosaveTicks: 3},
	}
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		mutate func(*Config)
		expErr string
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"tick too short": {
			mutate: func(c *Config) { c.TickInterval = "500ms" },
			expErr: "tick_interval must be at least 1 second",
		},
		"tick unparseable": {
			mutate: func(c *Config) { c.TickInterval = "soon" },
			expErr: "parsing tick_interval",
		},
		"missing actor path": {
			mutate: func(c *Config) { c.Storage.Actors.Path = "" },
			expErr: "actors: path is required",
		},
		"items path does not exist": {
			mutate: func(c *Config) { c.Storage.Items.Path = filepath.Join(dir, "nope") },
			expErr: "items: invalid path",
		},
		"nats port out of range": {
			mutate: func(c *Config) { c.Nats.Port = 70000 },
			expErr: "port 70000 out of range",
		},
		"nats bad timeout": {
			mutate: func(c *Config) { c.Nats.StartTimeout = "later" },
			expErr: "parsing start_timeout",
		},
		"save path missing": {
			mutate: func(c *Config) { c.Save.Path = "" },
			expErr: "save path is required",
		},
		"save directory missing": {
			mutate: func(c *Config) { c.Save.Path = filepath.Join(dir, "gone", "game.sav") },
			expErr: "save directory",
		},
		"redis backend": {
			mutate: func(c *Config) {
				c.Save = SaveConfig{Backend: SaveBackendRedis, Redis: &RedisSaveConfig{Addr: "localhost:6379"}}
			},
		},
		"redis backend without addr": {
			mutate: func(c *Config) { c.Save.Backend = SaveBackendRedis },
			expErr: "save redis addr is required",
		},
		"unknown backend": {
			mutate: func(c *Config) { c.Save.Backend = "floppy" },
			expErr: `unknown save backend "floppy"`,
		},
		"negative autosave": {
			mutate: func(c *Config) { c.Save.AutosaveTicks = -1 },
			expErr: "autosave_ticks must not be negative",
		},
		"bad dungeon params": {
			mutate: func(c *Config) {
				p := procgen.DefaultParams()
				p.RoomMinSize = 0
				c.Dungeon.Params = &p
			},
			expErr: "dungeon params",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(dir)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestDungeonConfig_Seed(t *testing.T) {
	seed := uint64(42)
	c := DungeonConfig{Seed: &seed}

	a, b := c.buildRNG(), c.buildRNG()
	for range 8 {
		testutil.AssertEqual(t, "roll", a.IntN(1000), b.IntN(1000))
	}
	testutil.AssertEqual(t, "default params", c.params().MapWidth, procgen.DefaultParams().MapWidth)
}
