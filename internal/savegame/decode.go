package savegame

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/procgen"
	"github.com/pixil98/go-rogue/internal/world"
)

// Unmarshal decodes a session encoded by Marshal. The data is validated in
// full before anything is built, so it either returns a complete session or
// an error wrapping ErrCorrupt. The session has no spawn table; callers
// attach one with SetSpawnTable before generating new floors.
func Unmarshal(b []byte) (*world.Session, error) {
	var data saveData
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", ErrCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
	}

	if err := data.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	s, err := data.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return s, nil
}

func (d *saveData) validate() error {
	if d.Version != formatVersion {
		return fmt.Errorf("unsupported version %d", d.Version)
	}

	el := errors.NewErrorList()
	n := len(d.Entities)

	if d.Current < 0 || d.Current >= len(d.Floors) {
		el.Add(fmt.Errorf("current floor %d out of range", d.Current))
	}
	if d.Player < 0 || d.Player >= n {
		el.Add(fmt.Errorf("player %d out of range", d.Player))
	}
	if err := d.Params.Validate(); err != nil {
		el.Add(fmt.Errorf("params: %w", err))
	}

	// owners[i] records who holds entity i: a floor (-1 - floor) or an
	// entity index.
	owners := make(map[int]int, n)
	claim := func(idx, owner int, where string) {
		if idx < 0 || idx >= n {
			el.Add(fmt.Errorf("%s: entity %d out of range", where, idx))
			return
		}
		if _, dup := owners[idx]; dup {
			el.Add(fmt.Errorf("%s: entity %d has more than one owner", where, idx))
			return
		}
		owners[idx] = owner
	}

	for f, fd := range d.Floors {
		el.Add(fd.validate(f))
		for _, idx := range fd.Entities {
			claim(idx, -1-f, fmt.Sprintf("floor %d", f))
		}
	}

	for i, ed := range d.Entities {
		where := fmt.Sprintf("entity %d", i)
		if ed.Inventory != nil {
			if ed.Inventory.Capacity < len(ed.Inventory.Items) {
				el.Add(fmt.Errorf("%s: inventory over capacity", where))
			}
			for _, idx := range ed.Inventory.Items {
				claim(idx, i, where)
			}
		}
		if ed.Fighter != nil && (ed.Fighter.HP < 0 || ed.Fighter.HP > ed.Fighter.MaxHP) {
			el.Add(fmt.Errorf("%s: hp %d outside [0, %d]", where, ed.Fighter.HP, ed.Fighter.MaxHP))
		}
	}

	if err := el.Err(); err != nil {
		return err
	}

	if len(owners) != n {
		return fmt.Errorf("%d entities have no owner", n-len(owners))
	}
	if err := d.checkAcyclic(owners); err != nil {
		return err
	}
	if owners[d.Player] != -1-d.Current {
		return fmt.Errorf("player is not on the current floor")
	}

	for i, ed := range d.Entities {
		if ed.Equipment == nil {
			continue
		}
		if ed.Inventory == nil {
			el.Add(fmt.Errorf("entity %d: equipment without inventory", i))
			continue
		}
		el.Add(d.checkSlot(i, ed.Equipment.Weapon, game.SlotWeapon, owners))
		el.Add(d.checkSlot(i, ed.Equipment.Armor, game.SlotArmor, owners))
	}
	return el.Err()
}

func (fd *floorData) validate(f int) error {
	if !game.ValidSize(fd.Width, fd.Height) {
		return fmt.Errorf("floor %d: bad dimensions %dx%d", f, fd.Width, fd.Height)
	}
	cells := fd.Width * fd.Height
	packed := (cells + 7) / 8
	if len(fd.Tiles) != cells || len(fd.Visible) != packed || len(fd.Explored) != packed {
		return fmt.Errorf("floor %d: %w", f, game.ErrBadGrid)
	}
	for _, t := range fd.Tiles {
		if !t.Valid() {
			return fmt.Errorf("floor %d: unknown tile %d", f, t)
		}
	}
	return nil
}

// checkAcyclic walks every holder chain up to a floor. Each entity has at
// most one owner here, so a chain that runs longer than the arena loops.
func (d *saveData) checkAcyclic(owners map[int]int) error {
	for i := range d.Entities {
		cur := i
		for steps := 0; owners[cur] >= 0; steps++ {
			if steps > len(d.Entities) {
				return fmt.Errorf("entity %d is carried in a loop", i)
			}
			cur = owners[cur]
		}
	}
	return nil
}

func (d *saveData) checkSlot(holder int, ref *int, slot game.EquipmentSlot, owners map[int]int) error {
	if ref == nil {
		return nil
	}
	idx := *ref
	if idx < 0 || idx >= len(d.Entities) {
		return fmt.Errorf("entity %d: %s %d out of range", holder, slot, idx)
	}
	if owners[idx] != holder {
		return fmt.Errorf("entity %d: %s %d is not carried by it", holder, slot, idx)
	}
	eq := d.Entities[idx].Equippable
	if eq == nil || eq.Slot != slot {
		return fmt.Errorf("entity %d: %s %d does not fit the slot", holder, slot, idx)
	}
	return nil
}

// build assumes validate passed.
func (d *saveData) build() (*world.Session, error) {
	rng := &procgen.RNG{}
	if err := rng.UnmarshalBinary(d.RNG); err != nil {
		return nil, err
	}

	entities := make([]*game.Entity, len(d.Entities))
	for i, ed := range d.Entities {
		e := &game.Entity{
			Id:             ed.Id,
			X:              ed.X,
			Y:              ed.Y,
			Glyph:          ed.Glyph,
			Color:          ed.Color,
			Name:           ed.Name,
			BlocksMovement: ed.BlocksMovement,
			RenderOrder:    ed.RenderOrder,
			AI:             ed.AI,
			Level:          ed.Level,
			Consumable:     ed.Consumable,
			Equippable:     ed.Equippable,
			Ext:            ed.Ext,
		}
		e.SetFighter(ed.Fighter)
		if ed.Inventory != nil {
			e.SetInventory(game.NewInventory(ed.Inventory.Capacity))
		}
		if ed.Equipment != nil {
			e.SetEquipment(game.NewEquipment())
		}
		entities[i] = e
	}

	floors := make([]*game.Map, len(d.Floors))
	for f, fd := range d.Floors {
		cells := fd.Width * fd.Height
		m, err := game.NewMapFromGrids(fd.Width, fd.Height, fd.Tiles, unpackBits(fd.Visible, cells), unpackBits(fd.Explored, cells))
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", f, err)
		}
		m.Rooms = fd.Rooms
		m.Start = fd.Start
		m.DownStairs = fd.DownStairs
		for _, idx := range fd.Entities {
			e := entities[idx]
			if err := e.Place(e.X, e.Y, m); err != nil {
				return nil, fmt.Errorf("floor %d: %w", f, err)
			}
		}
		floors[f] = m
	}

	for i, ed := range d.Entities {
		if ed.Inventory == nil {
			continue
		}
		for _, idx := range ed.Inventory.Items {
			if err := entities[i].Inventory.Add(entities[idx]); err != nil {
				return nil, fmt.Errorf("entity %d: %w", i, err)
			}
		}
	}

	for i, ed := range d.Entities {
		if ed.Equipment == nil {
			continue
		}
		for _, ref := range []*int{ed.Equipment.Weapon, ed.Equipment.Armor} {
			if ref == nil {
				continue
			}
			if err := entities[i].Equipment.Equip(entities[*ref]); err != nil {
				return nil, fmt.Errorf("entity %d: %w", i, err)
			}
		}
	}

	return world.RestoreSession(floors, d.Current, entities[d.Player], d.Params, rng)
}
