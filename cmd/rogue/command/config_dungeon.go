package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/procgen"
)

type DungeonConfig struct {
	// Params overrides the default generation parameters.
	Params *procgen.Params `json:"params,omitempty"`

	// Seed makes a new game reproducible. Without it the seed is random.
	Seed *uint64 `json:"seed,omitempty"`
}

func (c *DungeonConfig) validate() error {
	if c.Params == nil {
		return nil
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("dungeon params: %w", err)
	}
	return nil
}

func (c *DungeonConfig) params() procgen.Params {
	if c.Params == nil {
		return procgen.DefaultParams()
	}
	return *c.Params
}

func (c *DungeonConfig) buildRNG() *procgen.RNG {
	if c.Seed == nil {
		return procgen.NewRandomRNG()
	}
	slog.Info("using fixed dungeon seed", "seed", *c.Seed)
	return procgen.NewRNG(*c.Seed)
}
