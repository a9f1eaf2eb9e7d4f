package game

import (
	"fmt"

	"github.com/pixil98/go-rogue/internal/storage"
)

// PlayerTemplateId is the actor template the player is built from.
const PlayerTemplateId = "player"

// Dictionary holds all template stores. It provides a single reference that
// can be passed to resolution methods so they all share the same signature.
type Dictionary struct {
	Actors storage.Storer[*ActorTemplate]
	Items  storage.Storer[*ItemTemplate]
}

// Resolve resolves all foreign key references between templates.
func (d *Dictionary) Resolve() error {
	for _, id := range storage.SortedIds(d.Actors) {
		if err := d.Actors.Get(id).Resolve(d); err != nil {
			return fmt.Errorf("actor %s: %w", id, err)
		}
	}
	return nil
}

// Actor builds the prototype for the actor template id. The prototype and
// its starting kit record their template ids.
func (d *Dictionary) Actor(id string) (*Entity, error) {
	t := d.Actors.Get(id)
	if t == nil {
		return nil, fmt.Errorf("actor %q: %w", id, ErrUnknownTemplate)
	}
	e, err := t.Prototype()
	if err == nil {
		err = e.setTemplateId(id)
	}
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", id, err)
	}
	return e, nil
}

// Item builds the prototype for the item template id.
func (d *Dictionary) Item(id string) (*Entity, error) {
	t := d.Items.Get(id)
	if t == nil {
		return nil, fmt.Errorf("item %q: %w", id, ErrUnknownTemplate)
	}
	e := t.Prototype()
	if err := e.setTemplateId(id); err != nil {
		return nil, fmt.Errorf("item %q: %w", id, err)
	}
	return e, nil
}

// SpawnTable builds the weighted monster and item tables. The player
// template is never spawned as a monster.
func (d *Dictionary) SpawnTable() (*SpawnTable, error) {
	st := &SpawnTable{}
	for _, id := range storage.SortedIds(d.Actors) {
		if id == PlayerTemplateId {
			continue
		}
		proto, err := d.Actor(id)
		if err != nil {
			return nil, err
		}
		st.Monsters = append(st.Monsters, SpawnEntry{Id: id, Prototype: proto, Weights: d.Actors.Get(id).Spawn})
	}
	for _, id := range storage.SortedIds(d.Items) {
		proto, err := d.Item(id)
		if err != nil {
			return nil, err
		}
		st.Items = append(st.Items, SpawnEntry{Id: id, Prototype: proto, Weights: d.Items.Get(id).Spawn})
	}
	return st, nil
}
