package game

import "errors"

var (
	// ErrNotPlaced is returned when an operation needs an entity (or its
	// holder) to be attached to a map and it is not.
	ErrNotPlaced = errors.New("entity is not placed on a map")

	ErrInventoryFull   = errors.New("inventory is full")
	ErrNotCarried      = errors.New("item is not in the inventory")
	ErrNoInventory     = errors.New("entity has no inventory")
	ErrNotEquippable   = errors.New("item cannot be equipped")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrBadGrid         = errors.New("map grids do not match its dimensions")
	ErrContainerCycle  = errors.New("item cannot hold its own holder")
)
