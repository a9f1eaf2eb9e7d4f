package savegame

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/world"
)

// Marshal encodes the whole session: every floor, every entity on them or
// carried by them, the player and the generator state.
func Marshal(s *world.Session) ([]byte, error) {
	if s.Current() == nil {
		return nil, world.ErrNoFloor
	}

	rng, err := s.RNG.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding rng: %w", err)
	}

	enc := &encoder{index: map[*game.Entity]int{}}
	data := saveData{
		Version: formatVersion,
		Params:  s.Params,
		RNG:     rng,
		Current: s.CurrentIndex(),
	}

	for _, m := range s.Floors() {
		fd := floorData{
			Width:      m.Width,
			Height:     m.Height,
			Tiles:      m.Tiles(),
			Visible:    packBits(m.VisibleGrid()),
			Explored:   packBits(m.ExploredGrid()),
			Rooms:      m.Rooms,
			Start:      m.Start,
			DownStairs: m.DownStairs,
		}
		for e := range m.Entities() {
			fd.Entities = append(fd.Entities, enc.add(e))
		}
		data.Floors = append(data.Floors, fd)
	}

	player, ok := enc.index[s.Player]
	if !ok {
		return nil, world.ErrPlayerNotOnFloor
	}
	data.Player = player

	for e, i := range enc.index {
		if e.Equipment == nil {
			continue
		}
		eq := &equipmentData{}
		if eq.Weapon, err = enc.ref(e.Equipment.Weapon); err != nil {
			return nil, fmt.Errorf("%s weapon: %w", e.Name, err)
		}
		if eq.Armor, err = enc.ref(e.Equipment.Armor); err != nil {
			return nil, fmt.Errorf("%s armor: %w", e.Name, err)
		}
		enc.entities[i].Equipment = eq
	}
	data.Entities = enc.entities

	return json.Marshal(data)
}

type encoder struct {
	index    map[*game.Entity]int
	entities []entityData
}

// add records e and everything it carries, returning e's index.
func (enc *encoder) add(e *game.Entity) int {
	if i, ok := enc.index[e]; ok {
		return i
	}

	i := len(enc.entities)
	enc.index[e] = i
	enc.entities = append(enc.entities, entityData{
		Id:             e.Id,
		X:              e.X,
		Y:              e.Y,
		Glyph:          e.Glyph,
		Color:          e.Color,
		Name:           e.Name,
		BlocksMovement: e.BlocksMovement,
		RenderOrder:    e.RenderOrder,
		Fighter:        e.Fighter,
		AI:             e.AI,
		Level:          e.Level,
		Consumable:     e.Consumable,
		Equippable:     e.Equippable,
		Ext:            e.Ext,
	})

	if e.Inventory != nil {
		inv := &inventoryData{Capacity: e.Inventory.Capacity}
		for _, item := range e.Inventory.Items {
			inv.Items = append(inv.Items, enc.add(item))
		}
		enc.entities[i].Inventory = inv
	}
	return i
}

// ref returns the index of an equipped item, which must already have been
// recorded through its holder's inventory.
func (enc *encoder) ref(e *game.Entity) (*int, error) {
	if e == nil {
		return nil, nil
	}
	i, ok := enc.index[e]
	if !ok {
		return nil, game.ErrNotCarried
	}
	return &i, nil
}
