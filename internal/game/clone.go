package game

// Clone returns a deep copy of e that shares no mutable state with it. Carried
// items are cloned with it and equipment slots point at the cloned items.
// Every copy gets a fresh id from ids. The clone is unattached.
func (e *Entity) Clone(ids IDSource) *Entity {
	return e.clone(ids, map[*Entity]*Entity{})
}

func (e *Entity) clone(ids IDSource, memo map[*Entity]*Entity) *Entity {
	if e == nil {
		return nil
	}
	if c, ok := memo[e]; ok {
		return c
	}

	c := &Entity{
		Id:             ids(),
		X:              e.X,
		Y:              e.Y,
		Glyph:          e.Glyph,
		Color:          e.Color,
		Name:           e.Name,
		BlocksMovement: e.BlocksMovement,
		RenderOrder:    e.RenderOrder,
		AI:             e.AI.clone(),
		Ext:            e.Ext.Clone(),
	}
	memo[e] = c

	if e.Fighter != nil {
		f := *e.Fighter
		c.SetFighter(&f)
	}
	if e.Level != nil {
		l := *e.Level
		c.Level = &l
	}
	if e.Consumable != nil {
		cons := *e.Consumable
		c.Consumable = &cons
	}
	if e.Equippable != nil {
		eq := *e.Equippable
		c.Equippable = &eq
	}
	if e.Inventory != nil {
		inv := &Inventory{Capacity: e.Inventory.Capacity}
		for _, item := range e.Inventory.Items {
			inv.Items = append(inv.Items, item.clone(ids, memo))
		}
		c.SetInventory(inv)
	}
	if e.Equipment != nil {
		c.SetEquipment(&Equipment{
			Weapon: e.Equipment.Weapon.clone(ids, memo),
			Armor:  e.Equipment.Armor.clone(ids, memo),
		})
	}
	return c
}
