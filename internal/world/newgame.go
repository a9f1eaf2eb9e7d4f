package world

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/procgen"
)

// NewGame starts a session: the player is built from the player template
// with its starting kit, and the first floor is generated.
func NewGame(dict *game.Dictionary, params procgen.Params, rng *procgen.RNG) (*Session, error) {
	if dict.Actors.Get(game.PlayerTemplateId) == nil {
		return nil, ErrNoPlayerTemplate
	}
	proto, err := dict.Actor(game.PlayerTemplateId)
	if err != nil {
		return nil, fmt.Errorf("building player: %w", err)
	}
	table, err := dict.SpawnTable()
	if err != nil {
		return nil, fmt.Errorf("building spawn table: %w", err)
	}

	s := NewSession(proto.Clone(rng.NewID), params, rng, table)
	if err := s.GenerateFloor(); err != nil {
		return nil, err
	}
	return s, nil
}
