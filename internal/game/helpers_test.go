package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// seqIds returns an IDSource yielding "id-1", "id-2", ...
func seqIds() IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestOrc() *Entity {
	return NewActor("orc", 'o', tcell.NewRGBColor(63, 127, 63), NewFighter(10, 0, 3), &AI{Kind: AIHostile})
}

func newTestPotion() *Entity {
	e := NewItem("health potion", '!', tcell.NewRGBColor(127, 0, 255))
	e.Consumable = &Consumable{Kind: ConsumableHealing, Amount: 4}
	return e
}

func newTestDagger() *Entity {
	e := NewItem("dagger", '/', tcell.NewRGBColor(0, 191, 255))
	e.Equippable = &Equippable{Slot: SlotWeapon, PowerBonus: 2}
	return e
}

func newTestArmor() *Entity {
	e := NewItem("leather armor", '[', tcell.NewRGBColor(139, 69, 19))
	e.Equippable = &Equippable{Slot: SlotArmor, DefenseBonus: 1}
	return e
}

// newTestPlayer returns a player carrying an equipped dagger and armor.
func newTestPlayer() *Entity {
	p := NewActor("player", '@', tcell.ColorWhite, NewFighter(30, 1, 2), &AI{Kind: AIHostile})
	p.SetInventory(NewInventory(26))
	p.SetEquipment(NewEquipment())
	for _, item := range []*Entity{newTestDagger(), newTestArmor()} {
		if err := p.Inventory.Add(item); err != nil {
			panic(err)
		}
		if err := p.Equipment.Equip(item); err != nil {
			panic(err)
		}
	}
	return p
}

// newOpenMap returns a map with every cell floor.
func newOpenMap(w, h int) *Map {
	m := NewMap(w, h)
	for y := range h {
		for x := range w {
			m.SetTile(x, y, TileFloor)
		}
	}
	return m
}

// ownerCount returns how many of maps hold e.
func ownerCount(e *Entity, maps ...*Map) int {
	n := 0
	for _, m := range maps {
		for o := range m.Entities() {
			if o == e {
				n++
			}
		}
	}
	return n
}
