package game

import "slices"

// Inventory holds item entities carried by an actor. Items in an inventory
// have no map of their own; they report the holder's map.
type Inventory struct {
	Capacity int
	Items    []*Entity

	owner *Entity
}

// NewInventory creates an empty inventory that can hold capacity items.
func NewInventory(capacity int) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Owner returns the entity carrying the inventory.
func (inv *Inventory) Owner() *Entity {
	return inv.owner
}

// GameMap returns the holder's map.
func (inv *Inventory) GameMap() *Map {
	if inv.owner == nil {
		return nil
	}
	return inv.owner.GameMap()
}

// Full reports whether no more items fit.
func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int {
	return len(inv.Items)
}

// Contains reports whether item is carried here.
func (inv *Inventory) Contains(item *Entity) bool {
	return item != nil && item.parent == inv
}

// Add transfers item into the inventory, detaching it from its previous
// container. Adding an item already carried here is a no-op.
func (inv *Inventory) Add(item *Entity) error {
	if inv.Contains(item) {
		return nil
	}
	if inv.Full() {
		return ErrInventoryFull
	}
	for h := inv.owner; h != nil; h = h.Holder() {
		if h == item {
			return ErrContainerCycle
		}
	}

	item.detach()
	inv.Items = append(inv.Items, item)
	item.parent = inv
	return nil
}

// Remove detaches item from the inventory, unequipping it first. The item is
// left unattached.
func (inv *Inventory) Remove(item *Entity) error {
	if !inv.Contains(item) {
		return ErrNotCarried
	}
	item.detach()
	return nil
}

// Drop moves item from the inventory onto the holder's map at the holder's
// position.
func (inv *Inventory) Drop(item *Entity) error {
	if !inv.Contains(item) {
		return ErrNotCarried
	}
	m := inv.GameMap()
	if m == nil {
		return ErrNotPlaced
	}
	return item.Place(inv.owner.X, inv.owner.Y, m)
}

func (inv *Inventory) remove(item *Entity) {
	if inv.owner != nil && inv.owner.Equipment != nil {
		inv.owner.Equipment.unequipItem(item)
	}
	inv.Items = slices.DeleteFunc(inv.Items, func(e *Entity) bool { return e == item })
}

// Equipment tracks which carried items are worn. Slots hold the same pointers
// as the owner's inventory.
type Equipment struct {
	Weapon *Entity
	Armor  *Entity

	owner *Entity
}

// NewEquipment returns an empty set of equipment slots.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// SetEquipment attaches eq and points its owner back at e.
func (e *Entity) SetEquipment(eq *Equipment) {
	if eq != nil {
		eq.owner = e
	}
	e.Equipment = eq
}

// Slot returns the item in slot, or nil.
func (eq *Equipment) Slot(slot EquipmentSlot) *Entity {
	switch slot {
	case SlotWeapon:
		return eq.Weapon
	case SlotArmor:
		return eq.Armor
	}
	return nil
}

func (eq *Equipment) setSlot(slot EquipmentSlot, item *Entity) {
	switch slot {
	case SlotWeapon:
		eq.Weapon = item
	case SlotArmor:
		eq.Armor = item
	}
}

// IsEquipped reports whether item occupies any slot.
func (eq *Equipment) IsEquipped(item *Entity) bool {
	return item != nil && (eq.Weapon == item || eq.Armor == item)
}

// PowerBonus sums the power bonus of every worn item.
func (eq *Equipment) PowerBonus() int {
	total := 0
	for _, item := range []*Entity{eq.Weapon, eq.Armor} {
		if item != nil && item.Equippable != nil {
			total += item.Equippable.PowerBonus
		}
	}
	return total
}

// DefenseBonus sums the defense bonus of every worn item.
func (eq *Equipment) DefenseBonus() int {
	total := 0
	for _, item := range []*Entity{eq.Weapon, eq.Armor} {
		if item != nil && item.Equippable != nil {
			total += item.Equippable.DefenseBonus
		}
	}
	return total
}

// Equip puts item into its slot, replacing whatever was there. The item must
// be carried in the owner's inventory.
func (eq *Equipment) Equip(item *Entity) error {
	if item.Equippable == nil {
		return ErrNotEquippable
	}
	if eq.owner == nil || eq.owner.Inventory == nil || !eq.owner.Inventory.Contains(item) {
		return ErrNotCarried
	}
	eq.setSlot(item.Equippable.Slot, item)
	return nil
}

// Unequip empties slot and returns what was in it.
func (eq *Equipment) Unequip(slot EquipmentSlot) *Entity {
	item := eq.Slot(slot)
	eq.setSlot(slot, nil)
	return item
}

// ToggleEquip equips item, or unequips it when it is already worn. It reports
// whether the item ends up equipped.
func (eq *Equipment) ToggleEquip(item *Entity) (bool, error) {
	if eq.IsEquipped(item) {
		eq.unequipItem(item)
		return false, nil
	}
	if err := eq.Equip(item); err != nil {
		return false, err
	}
	return true, nil
}

func (eq *Equipment) unequipItem(item *Entity) {
	if eq.Weapon == item {
		eq.Weapon = nil
	}
	if eq.Armor == item {
		eq.Armor = nil
	}
}
