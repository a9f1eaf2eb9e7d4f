package game

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pixil98/go-rogue/internal/storage"
)

// RenderOrder decides which entity is drawn on top when several share a
// cell. Higher values draw later.
type RenderOrder int

const (
	RenderCorpse RenderOrder = iota
	RenderItem
	RenderActor
)

// container is anything that owns a set of entities: a Map, or an Inventory
// carried by another entity.
type container interface {
	GameMap() *Map
	remove(*Entity)
}

// Entity is anything positioned in the dungeon: the player, monsters, items
// and corpses. Behaviour is attached through optional capabilities; an entity
// with a Fighter is an actor.
type Entity struct {
	Id             string
	X              int
	Y              int
	Glyph          rune
	Color          tcell.Color
	Name           string
	BlocksMovement bool
	RenderOrder    RenderOrder

	Fighter    *Fighter
	AI         *AI
	Level      *Level
	Inventory  *Inventory
	Equipment  *Equipment
	Consumable *Consumable
	Equippable *Equippable

	Ext storage.ExtensionState

	parent container
}

// ExtTemplate is the extension key holding the id of the template an entity
// was built from.
const ExtTemplate = "template"

// IDSource mints instance ids for new entities.
type IDSource func() string

// NewID returns a random uuid string.
func NewID() string {
	return uuid.NewString()
}

// NewEntity creates an unattached, non-blocking entity.
func NewEntity(name string, glyph rune, color tcell.Color) *Entity {
	return &Entity{
		Glyph:       glyph,
		Color:       color,
		Name:        name,
		RenderOrder: RenderCorpse,
	}
}

// NewActor creates an unattached, blocking entity with combat stats. A nil ai
// creates a dead actor.
func NewActor(name string, glyph rune, color tcell.Color, fighter Fighter, ai *AI) *Entity {
	e := NewEntity(name, glyph, color)
	e.BlocksMovement = true
	e.RenderOrder = RenderActor
	e.SetFighter(&fighter)
	e.AI = ai
	return e
}

// NewItem creates an unattached item entity.
func NewItem(name string, glyph rune, color tcell.Color) *Entity {
	e := NewEntity(name, glyph, color)
	e.RenderOrder = RenderItem
	return e
}

// SetFighter attaches f and points its owner back at e.
func (e *Entity) SetFighter(f *Fighter) {
	if f != nil {
		f.owner = e
	}
	e.Fighter = f
}

// SetInventory attaches inv, making e its holder and inv the parent of every
// item already in it.
func (e *Entity) SetInventory(inv *Inventory) {
	if inv != nil {
		inv.owner = e
		for _, item := range inv.Items {
			item.parent = inv
		}
	}
	e.Inventory = inv
}

// TemplateId returns the id of the template e was built from, or "" for an
// entity made directly in code.
func (e *Entity) TemplateId() string {
	id, _, err := storage.GetExtension[string](e.Ext, ExtTemplate)
	if err != nil {
		return ""
	}
	return id
}

func (e *Entity) setTemplateId(id string) error {
	return e.Ext.Set(ExtTemplate, id)
}

// IsActor reports whether e has combat stats.
func (e *Entity) IsActor() bool {
	return e.Fighter != nil
}

// IsAlive reports whether e is an actor that can still take turns.
func (e *Entity) IsAlive() bool {
	return e.Fighter != nil && e.AI != nil
}

// GameMap returns the map e is on, following the chain of holders for items
// inside an inventory. It is nil for an unattached entity.
func (e *Entity) GameMap() *Map {
	if e.parent == nil {
		return nil
	}
	return e.parent.GameMap()
}

// Holder returns the entity whose inventory holds e, or nil when e is on a
// map or unattached.
func (e *Entity) Holder() *Entity {
	if inv, ok := e.parent.(*Inventory); ok {
		return inv.owner
	}
	return nil
}

// Attached reports whether e is owned by any container.
func (e *Entity) Attached() bool {
	return e.parent != nil
}

// Spawn places an independent copy of template on m at (x, y). The template
// is never modified.
func Spawn(template *Entity, m *Map, x, y int) *Entity {
	return SpawnWith(NewID, template, m, x, y)
}

// SpawnWith is Spawn with an explicit id source for the copy and everything
// it carries.
func SpawnWith(ids IDSource, template *Entity, m *Map, x, y int) *Entity {
	e := template.Clone(ids)
	e.X, e.Y = x, y
	m.add(e)
	e.parent = m
	return e
}

// Place moves e to (x, y). When m is non-nil and is not e's current
// container, e is detached from its old container and attached to m in the
// same call. Placing an unattached entity without a map is ErrNotPlaced.
func (e *Entity) Place(x, y int, m *Map) error {
	if m == nil {
		if e.parent == nil {
			return ErrNotPlaced
		}
		e.X, e.Y = x, y
		return nil
	}

	e.X, e.Y = x, y
	if e.parent == m {
		return nil
	}
	e.detach()
	m.add(e)
	e.parent = m
	return nil
}

// Move shifts e by (dx, dy). Walkability and bounds are the caller's
// concern.
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Remove detaches e from whatever owns it. A removed entity keeps its
// position and capabilities.
func (e *Entity) Remove() {
	e.detach()
}

func (e *Entity) detach() {
	if e.parent == nil {
		return
	}
	e.parent.remove(e)
	e.parent = nil
}

// DistanceTo returns the euclidean distance between e and (x, y).
func (e *Entity) DistanceTo(x, y int) float64 {
	return distance(e.X, e.Y, x, y)
}
