package game

import "fmt"

// ConsumableKind names what happens when a consumable is used. The effect
// itself is resolved by the turn system.
type ConsumableKind string

const (
	ConsumableHealing   ConsumableKind = "healing"
	ConsumableLightning ConsumableKind = "lightning"
	ConsumableConfusion ConsumableKind = "confusion"
	ConsumableFireball  ConsumableKind = "fireball"
)

// Consumable is a single-use item capability.
type Consumable struct {
	Kind     ConsumableKind `json:"kind"`
	Amount   int            `json:"amount,omitempty"`
	Damage   int            `json:"damage,omitempty"`
	Radius   int            `json:"radius,omitempty"`
	Turns    int            `json:"turns,omitempty"`
	MaxRange int            `json:"max_range,omitempty"`
}

func (c *Consumable) Validate() error {
	switch c.Kind {
	case ConsumableHealing:
		if c.Amount <= 0 {
			return fmt.Errorf("healing amount must be positive")
		}
	case ConsumableLightning:
		if c.Damage <= 0 || c.MaxRange <= 0 {
			return fmt.Errorf("lightning needs positive damage and max_range")
		}
	case ConsumableConfusion:
		if c.Turns <= 0 {
			return fmt.Errorf("confusion turns must be positive")
		}
	case ConsumableFireball:
		if c.Damage <= 0 || c.Radius <= 0 {
			return fmt.Errorf("fireball needs positive damage and radius")
		}
	default:
		return fmt.Errorf("unknown consumable kind %q", c.Kind)
	}
	return nil
}

// EquipmentSlot names where an equippable item is worn.
type EquipmentSlot string

const (
	SlotWeapon EquipmentSlot = "weapon"
	SlotArmor  EquipmentSlot = "armor"
)

// Equippable is the capability of items that can be worn for stat bonuses.
type Equippable struct {
	Slot         EquipmentSlot `json:"slot"`
	PowerBonus   int           `json:"power_bonus,omitempty"`
	DefenseBonus int           `json:"defense_bonus,omitempty"`
}

func (e *Equippable) Validate() error {
	switch e.Slot {
	case SlotWeapon, SlotArmor:
		return nil
	default:
		return fmt.Errorf("unknown equipment slot %q", e.Slot)
	}
}
