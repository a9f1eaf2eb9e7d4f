package savegame

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/procgen"
	"github.com/pixil98/go-rogue/internal/storage"
)

// formatVersion is bumped whenever the encoded layout changes.
const formatVersion = 1

// saveData is the encoded session. Every entity appears exactly once in
// Entities; floors, inventories, equipment slots and the player refer to
// entities by their index there, so shared references survive a round trip.
type saveData struct {
	Version  int            `json:"version"`
	Params   procgen.Params `json:"params"`
	RNG      []byte         `json:"rng"`
	Current  int            `json:"current"`
	Player   int            `json:"player"`
	Floors   []floorData    `json:"floors"`
	Entities []entityData   `json:"entities"`
}

type floorData struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Tiles      []game.TileKind `json:"tiles"`
	Visible    []byte          `json:"visible"`
	Explored   []byte          `json:"explored"`
	Rooms      []game.Rect     `json:"rooms,omitempty"`
	Start      game.Point      `json:"start"`
	DownStairs game.Point      `json:"down_stairs"`
	Entities   []int           `json:"entities,omitempty"`
}

type entityData struct {
	Id             string           `json:"id"`
	X              int              `json:"x"`
	Y              int              `json:"y"`
	Glyph          rune             `json:"glyph"`
	Color          tcell.Color      `json:"color"`
	Name           string           `json:"name"`
	BlocksMovement bool             `json:"blocks_movement,omitempty"`
	RenderOrder    game.RenderOrder `json:"render_order"`

	Fighter    *game.Fighter    `json:"fighter,omitempty"`
	AI         *game.AI         `json:"ai,omitempty"`
	Level      *game.Level      `json:"level,omitempty"`
	Inventory  *inventoryData   `json:"inventory,omitempty"`
	Equipment  *equipmentData   `json:"equipment,omitempty"`
	Consumable *game.Consumable `json:"consumable,omitempty"`
	Equippable *game.Equippable `json:"equippable,omitempty"`

	Ext storage.ExtensionState `json:"ext,omitempty"`
}

type inventoryData struct {
	Capacity int   `json:"capacity"`
	Items    []int `json:"items,omitempty"`
}

type equipmentData struct {
	Weapon *int `json:"weapon,omitempty"`
	Armor  *int `json:"armor,omitempty"`
}

// packBits stores one bool per bit, least significant bit first.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

func unpackBits(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<(i%8)) != 0
	}
	return out
}
