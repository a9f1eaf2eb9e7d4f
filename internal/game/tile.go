package game

import "github.com/gdamore/tcell/v2"

// Glyph is the appearance of a single cell.
type Glyph struct {
	Rune rune        `json:"rune"`
	Fg   tcell.Color `json:"fg"`
	Bg   tcell.Color `json:"bg"`
}

// TileKind indexes the tile table. The zero value is wall, so a freshly
// allocated grid is solid rock.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDownStairs

	tileKindCount
)

// Tile describes the behaviour and look of a TileKind.
type Tile struct {
	Name        string
	Walkable    bool
	Transparent bool
	Dark        Glyph // explored but not currently in view
	Light       Glyph // in view
}

// Shroud is drawn for cells that have never been seen.
var Shroud = Glyph{Rune: ' ', Fg: tcell.ColorWhite, Bg: tcell.ColorBlack}

var tileTable = [tileKindCount]Tile{
	TileWall: {
		Name:  "wall",
		Dark:  Glyph{Rune: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(0, 0, 100)},
		Light: Glyph{Rune: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(130, 110, 50)},
	},
	TileFloor: {
		Name:        "floor",
		Walkable:    true,
		Transparent: true,
		Dark:        Glyph{Rune: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(50, 50, 150)},
		Light:       Glyph{Rune: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(200, 180, 50)},
	},
	TileDownStairs: {
		Name:        "down stairs",
		Walkable:    true,
		Transparent: true,
		Dark:        Glyph{Rune: '>', Fg: tcell.NewRGBColor(0, 0, 100), Bg: tcell.NewRGBColor(50, 50, 150)},
		Light:       Glyph{Rune: '>', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(200, 180, 50)},
	},
}

// Valid reports whether k names a known tile.
func (k TileKind) Valid() bool {
	return k < tileKindCount
}

// Tile returns the definition for k. Unknown kinds read as wall.
func (k TileKind) Tile() Tile {
	if !k.Valid() {
		return tileTable[TileWall]
	}
	return tileTable[k]
}

func (k TileKind) String() string {
	return k.Tile().Name
}
