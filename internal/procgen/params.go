package procgen

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/game"
)

// FloorLimit caps room population from MinFloor downward until a deeper
// limit takes over.
type FloorLimit struct {
	MinFloor    int `json:"min_floor"`
	MaxMonsters int `json:"max_monsters"`
	MaxItems    int `json:"max_items"`
}

// Params are the dungeon generation parameters.
type Params struct {
	MapWidth           int          `json:"map_width"`
	MapHeight          int          `json:"map_height"`
	RoomMinSize        int          `json:"room_min_size"`
	RoomMaxSize        int          `json:"room_max_size"`
	MaxRooms           int          `json:"max_rooms"`
	MaxMonstersPerRoom int          `json:"max_monsters_per_room"`
	MaxItemsPerRoom    int          `json:"max_items_per_room"`
	FloorLimits        []FloorLimit `json:"floor_limits,omitempty"`
}

// DefaultParams returns the standard 80x43 dungeon.
func DefaultParams() Params {
	return Params{
		MapWidth:           80,
		MapHeight:          43,
		RoomMinSize:        6,
		RoomMaxSize:        10,
		MaxRooms:           30,
		MaxMonstersPerRoom: 2,
		MaxItemsPerRoom:    1,
		FloorLimits: []FloorLimit{
			{MinFloor: 1, MaxMonsters: 2, MaxItems: 1},
			{MinFloor: 4, MaxMonsters: 3, MaxItems: 2},
			{MinFloor: 6, MaxMonsters: 5, MaxItems: 2},
		},
	}
}

func (p Params) Validate() error {
	el := errors.NewErrorList()

	if !game.ValidSize(p.MapWidth, p.MapHeight) {
		el.Add(fmt.Errorf("map dimensions must be between 1 and %d", game.MaxMapSize))
	}
	if p.RoomMinSize <= 0 {
		el.Add(fmt.Errorf("room_min_size must be positive"))
	}
	if p.RoomMaxSize < p.RoomMinSize {
		el.Add(fmt.Errorf("room_max_size must not be less than room_min_size"))
	}
	if p.MaxRooms <= 0 {
		el.Add(fmt.Errorf("max_rooms must be positive"))
	}
	if p.MaxMonstersPerRoom < 0 || p.MaxItemsPerRoom < 0 {
		el.Add(fmt.Errorf("room population caps must not be negative"))
	}
	for i, l := range p.FloorLimits {
		if l.MinFloor < 1 {
			el.Add(fmt.Errorf("floor limit %d: min_floor must be at least 1", i))
		}
		if l.MaxMonsters < 0 || l.MaxItems < 0 {
			el.Add(fmt.Errorf("floor limit %d: caps must not be negative", i))
		}
	}

	return el.Err()
}

// ForFloor returns p with the population caps of the deepest floor limit
// that applies to floor. Without a matching limit p is returned unchanged.
func (p Params) ForFloor(floor int) Params {
	best := 0
	for _, l := range p.FloorLimits {
		if l.MinFloor <= floor && l.MinFloor >= best {
			best = l.MinFloor
			p.MaxMonstersPerRoom = l.MaxMonsters
			p.MaxItemsPerRoom = l.MaxItems
		}
	}
	return p
}
