package game

import "github.com/gdamore/tcell/v2"

// CorpseColor is the color an actor takes on when it dies.
var CorpseColor = tcell.NewRGBColor(191, 0, 0)

// Fighter holds an actor's combat stats. Damage and attack resolution live
// outside the core; Fighter only keeps the numbers consistent.
type Fighter struct {
	MaxHP       int `json:"max_hp"`
	HP          int `json:"hp"`
	BaseDefense int `json:"base_defense"`
	BasePower   int `json:"base_power"`

	owner *Entity
}

// NewFighter returns a Fighter at full health.
func NewFighter(hp, defense, power int) Fighter {
	return Fighter{MaxHP: hp, HP: hp, BaseDefense: defense, BasePower: power}
}

// Owner returns the actor this Fighter belongs to.
func (f *Fighter) Owner() *Entity {
	return f.owner
}

// Defense is base defense plus equipment bonuses.
func (f *Fighter) Defense() int {
	return f.BaseDefense + f.bonus(func(eq *Equipment) int { return eq.DefenseBonus() })
}

// Power is base power plus equipment bonuses.
func (f *Fighter) Power() int {
	return f.BasePower + f.bonus(func(eq *Equipment) int { return eq.PowerBonus() })
}

func (f *Fighter) bonus(fn func(*Equipment) int) int {
	if f.owner == nil || f.owner.Equipment == nil {
		return 0
	}
	return fn(f.owner.Equipment)
}

// SetHP clamps hp to [0, MaxHP]. Reaching zero kills a living owner.
func (f *Fighter) SetHP(hp int) {
	f.HP = max(0, min(hp, f.MaxHP))
	if f.HP == 0 && f.owner != nil && f.owner.IsAlive() {
		f.owner.Kill()
	}
}

// TakeDamage lowers HP by amount.
func (f *Fighter) TakeDamage(amount int) {
	f.SetHP(f.HP - amount)
}

// Heal restores up to amount HP and returns how much was actually recovered.
func (f *Fighter) Heal(amount int) int {
	if f.HP == f.MaxHP || amount <= 0 {
		return 0
	}
	before := f.HP
	f.SetHP(f.HP + amount)
	return f.HP - before
}

// AIKind names a behaviour. The decision logic for each kind is supplied by
// the turn system.
type AIKind string

const (
	AIHostile  AIKind = "hostile"
	AIConfused AIKind = "confused"
)

// AI is the capability that makes an actor alive. Confusion wraps the
// previous AI so it can be restored when the effect runs out.
type AI struct {
	Kind           AIKind `json:"kind"`
	TurnsRemaining int    `json:"turns_remaining,omitempty"`
	Previous       *AI    `json:"previous,omitempty"`
}

func (a *AI) clone() *AI {
	if a == nil {
		return nil
	}
	c := *a
	c.Previous = a.Previous.clone()
	return &c
}

// Kill turns a living actor into a corpse. The entity keeps its identity and
// position; only its capabilities and appearance change.
func (e *Entity) Kill() {
	if !e.IsAlive() {
		return
	}
	e.AI = nil
	e.Glyph = '%'
	e.Color = CorpseColor
	e.BlocksMovement = false
	e.RenderOrder = RenderCorpse
	e.Name = "remains of " + e.Name
}

// Confuse swaps a living actor's AI for a confused one lasting turns.
func (e *Entity) Confuse(turns int) {
	if !e.IsAlive() || turns <= 0 {
		return
	}
	e.AI = &AI{Kind: AIConfused, TurnsRemaining: turns, Previous: e.AI}
}

// TickConfusion counts down a confused AI and restores the previous one when
// it expires. It reports whether the actor is still confused.
func (e *Entity) TickConfusion() bool {
	if e.AI == nil || e.AI.Kind != AIConfused {
		return false
	}
	e.AI.TurnsRemaining--
	if e.AI.TurnsRemaining > 0 {
		return true
	}
	e.AI = e.AI.Previous
	return false
}
