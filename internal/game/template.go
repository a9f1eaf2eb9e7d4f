package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/storage"
)

// SpawnWeight gives a template's weight from MinFloor downward until a later
// entry overrides it.
type SpawnWeight struct {
	MinFloor int `json:"min_floor"`
	Weight   int `json:"weight"`
}

// Appearance is the shared look of every template.
type Appearance struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

func (a Appearance) validate(kind string) error {
	el := errors.NewErrorList()
	if a.Name == "" {
		el.Add(fmt.Errorf("%s name is required", kind))
	}
	if utf8.RuneCountInString(a.Glyph) != 1 {
		el.Add(fmt.Errorf("%s glyph must be a single character", kind))
	}
	if a.Color != "" && tcell.GetColor(a.Color) == tcell.ColorDefault {
		el.Add(fmt.Errorf("%s color %q is not a known color", kind, a.Color))
	}
	return el.Err()
}

func (a Appearance) glyph() rune {
	r, _ := utf8.DecodeRuneInString(a.Glyph)
	return r
}

func (a Appearance) color() tcell.Color {
	if a.Color == "" {
		return tcell.ColorWhite
	}
	return tcell.GetColor(a.Color)
}

func validateWeights(kind string, weights []SpawnWeight) error {
	el := errors.NewErrorList()
	for i, w := range weights {
		if w.MinFloor < 1 {
			el.Add(fmt.Errorf("%s spawn %d: min_floor must be at least 1", kind, i))
		}
		if w.Weight < 0 {
			el.Add(fmt.Errorf("%s spawn %d: weight must not be negative", kind, i))
		}
	}
	return el.Err()
}

// ItemSpawn is an item an actor template starts with.
type ItemSpawn struct {
	Item     storage.SmartIdentifier[*ItemTemplate] `json:"item"`
	Equipped bool                                   `json:"equipped,omitempty"`
}

// ActorTemplate defines a kind of actor loaded from asset files. The player
// is the actor template with id "player".
type ActorTemplate struct {
	Appearance

	HP      int    `json:"hp"`
	Defense int    `json:"defense"`
	Power   int    `json:"power"`
	AI      AIKind `json:"ai,omitempty"`

	XPGiven       int `json:"xp_given,omitempty"`
	LevelUpBase   int `json:"level_up_base,omitempty"`
	LevelUpFactor int `json:"level_up_factor,omitempty"`

	InventoryCapacity int         `json:"inventory_capacity,omitempty"`
	Inventory         []ItemSpawn `json:"inventory,omitempty"`

	Spawn []SpawnWeight `json:"spawn,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (t *ActorTemplate) Validate() error {
	el := errors.NewErrorList()
	el.Add(t.Appearance.validate("actor"))
	if t.HP <= 0 {
		el.Add(fmt.Errorf("actor hp must be positive"))
	}
	if t.Defense < 0 || t.Power < 0 {
		el.Add(fmt.Errorf("actor defense and power must not be negative"))
	}
	switch t.AI {
	case "", AIHostile:
	default:
		el.Add(fmt.Errorf("actor ai %q is not a starting behaviour", t.AI))
	}
	if t.InventoryCapacity < 0 {
		el.Add(fmt.Errorf("actor inventory capacity must not be negative"))
	}
	if len(t.Inventory) > t.InventoryCapacity {
		el.Add(fmt.Errorf("actor starting inventory exceeds its capacity"))
	}
	for _, spawn := range t.Inventory {
		el.Add(spawn.Item.Validate())
	}
	el.Add(validateWeights("actor", t.Spawn))
	return el.Err()
}

// Resolve resolves starting inventory references.
func (t *ActorTemplate) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for i := range t.Inventory {
		el.Add(t.Inventory[i].Item.Resolve(dict.Items))
	}
	return el.Err()
}

// Prototype builds the template entity that instances are spawned from. The
// template must be resolved first.
func (t *ActorTemplate) Prototype() (*Entity, error) {
	kind := t.AI
	if kind == "" {
		kind = AIHostile
	}
	e := NewActor(t.Name, t.glyph(), t.color(), NewFighter(t.HP, t.Defense, t.Power), &AI{Kind: kind})
	e.Level = NewLevel(t.LevelUpBase, t.LevelUpFactor, t.XPGiven)

	if t.InventoryCapacity == 0 {
		return e, nil
	}
	e.SetInventory(NewInventory(t.InventoryCapacity))
	e.SetEquipment(NewEquipment())
	for _, spawn := range t.Inventory {
		tmpl := spawn.Item.Get()
		if tmpl == nil {
			return nil, fmt.Errorf("item %q: %w", spawn.Item.Id(), ErrUnknownTemplate)
		}
		item := tmpl.Prototype()
		if err := item.setTemplateId(spawn.Item.Id()); err != nil {
			return nil, err
		}
		if err := e.Inventory.Add(item); err != nil {
			return nil, fmt.Errorf("adding %q: %w", spawn.Item.Id(), err)
		}
		if !spawn.Equipped {
			continue
		}
		if err := e.Equipment.Equip(item); err != nil {
			return nil, fmt.Errorf("equipping %q: %w", spawn.Item.Id(), err)
		}
	}
	return e, nil
}

// ItemTemplate defines a kind of item loaded from asset files.
type ItemTemplate struct {
	Appearance

	Consumable *Consumable `json:"consumable,omitempty"`
	Equippable *Equippable `json:"equippable,omitempty"`

	Spawn []SpawnWeight `json:"spawn,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (t *ItemTemplate) Validate() error {
	el := errors.NewErrorList()
	el.Add(t.Appearance.validate("item"))
	switch {
	case t.Consumable == nil && t.Equippable == nil:
		el.Add(fmt.Errorf("item must be consumable or equippable"))
	case t.Consumable != nil && t.Equippable != nil:
		el.Add(fmt.Errorf("item cannot be both consumable and equippable"))
	case t.Consumable != nil:
		el.Add(t.Consumable.Validate())
	default:
		el.Add(t.Equippable.Validate())
	}
	el.Add(validateWeights("item", t.Spawn))
	return el.Err()
}

// Prototype builds the template entity that instances are spawned from.
func (t *ItemTemplate) Prototype() *Entity {
	e := NewItem(t.Name, t.glyph(), t.color())
	if t.Consumable != nil {
		c := *t.Consumable
		e.Consumable = &c
	}
	if t.Equippable != nil {
		eq := *t.Equippable
		e.Equippable = &eq
	}
	return e
}
