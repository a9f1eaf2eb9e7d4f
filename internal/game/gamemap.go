package game

import (
	"iter"
	"slices"
)

// Point is a map cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned room rectangle. X2 and Y2 are the far walls, so
// the carved interior is [X1+1, X2) x [Y1+1, Y2).
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewRect returns the rectangle with top-left (x, y) and the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the rectangle's center cell.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r and o overlap, walls included.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// Contains reports whether (x, y) lies on the carved interior of r.
func (r Rect) Contains(x, y int) bool {
	return x > r.X1 && x < r.X2 && y > r.Y1 && y < r.Y2
}

// Inner iterates over the interior cells of r, row by row.
func (r Rect) Inner() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for y := r.Y1 + 1; y < r.Y2; y++ {
			for x := r.X1 + 1; x < r.X2; x++ {
				if !yield(Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Map is one dungeon floor: a fixed-size tile grid, the player's visibility
// state and the entities placed on it.
type Map struct {
	Width  int
	Height int

	Rooms      []Rect
	Start      Point
	DownStairs Point

	tiles    []TileKind
	visible  []bool
	explored []bool

	entities []*Entity
}

// NewMap returns a width x height map filled with walls.
func NewMap(width, height int) *Map {
	n := max(width, 0) * max(height, 0)
	return &Map{
		Width:    width,
		Height:   height,
		tiles:    make([]TileKind, n),
		visible:  make([]bool, n),
		explored: make([]bool, n),
	}
}

// MaxMapSize bounds both map dimensions.
const MaxMapSize = 1 << 12

// ValidSize reports whether width and height are both in [1, MaxMapSize].
func ValidSize(width, height int) bool {
	return width > 0 && height > 0 && width <= MaxMapSize && height <= MaxMapSize
}

// NewMapFromGrids builds a map from raw row-major grids. Both dimensions must
// be ValidSize, every grid must hold width*height cells and every tile kind
// must be valid.
func NewMapFromGrids(width, height int, tiles []TileKind, visible, explored []bool) (*Map, error) {
	if !ValidSize(width, height) {
		return nil, ErrBadGrid
	}
	n := width * height
	if len(tiles) != n || len(visible) != n || len(explored) != n {
		return nil, ErrBadGrid
	}
	for _, t := range tiles {
		if !t.Valid() {
			return nil, ErrBadGrid
		}
	}
	return &Map{
		Width:    width,
		Height:   height,
		tiles:    slices.Clone(tiles),
		visible:  slices.Clone(visible),
		explored: slices.Clone(explored),
	}, nil
}

func (m *Map) index(x, y int) int {
	return y*m.Width + x
}

// GameMap returns m. It lets a Map act as an entity's container.
func (m *Map) GameMap() *Map {
	return m
}

// InBounds reports whether (x, y) is inside the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile returns the tile kind at (x, y). Out of bounds cells read as walls.
func (m *Map) Tile(x, y int) TileKind {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.tiles[m.index(x, y)]
}

// SetTile sets the tile at (x, y). Out of bounds writes are ignored.
func (m *Map) SetTile(x, y int, t TileKind) {
	if m.InBounds(x, y) {
		m.tiles[m.index(x, y)] = t
	}
}

func (m *Map) IsWalkable(x, y int) bool {
	return m.Tile(x, y).Tile().Walkable
}

func (m *Map) IsTransparent(x, y int) bool {
	return m.Tile(x, y).Tile().Transparent
}

// Visible reports whether (x, y) is in the player's current field of view.
func (m *Map) Visible(x, y int) bool {
	return m.InBounds(x, y) && m.visible[m.index(x, y)]
}

// Explored reports whether (x, y) has ever been seen.
func (m *Map) Explored(x, y int) bool {
	return m.InBounds(x, y) && m.explored[m.index(x, y)]
}

// SetVisible marks (x, y) as visible now. Visible cells become explored.
func (m *Map) SetVisible(x, y int, v bool) {
	if !m.InBounds(x, y) {
		return
	}
	i := m.index(x, y)
	m.visible[i] = v
	if v {
		m.explored[i] = true
	}
}

// Tiles returns a copy of the row-major tile grid.
func (m *Map) Tiles() []TileKind { return slices.Clone(m.tiles) }

// VisibleGrid returns a copy of the row-major visible grid.
func (m *Map) VisibleGrid() []bool { return slices.Clone(m.visible) }

// ExploredGrid returns a copy of the row-major explored grid.
func (m *Map) ExploredGrid() []bool { return slices.Clone(m.explored) }

func (m *Map) add(e *Entity) {
	m.entities = append(m.entities, e)
}

func (m *Map) remove(e *Entity) {
	m.entities = slices.DeleteFunc(m.entities, func(o *Entity) bool { return o == e })
}

// Len returns how many entities are on the map.
func (m *Map) Len() int {
	return len(m.entities)
}

// Contains reports whether e is on the map.
func (m *Map) Contains(e *Entity) bool {
	return e != nil && e.parent == m
}

// Entities iterates over every entity on the map in placement order. Each
// call reflects the membership at the time it is ranged over.
func (m *Map) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range slices.Clone(m.entities) {
			if !yield(e) {
				return
			}
		}
	}
}

// Actors iterates over the living actors on the map.
func (m *Map) Actors() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for e := range m.Entities() {
			if e.IsAlive() && !yield(e) {
				return
			}
		}
	}
}

// Items iterates over the item entities lying on the map.
func (m *Map) Items() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for e := range m.Entities() {
			if (e.Consumable != nil || e.Equippable != nil) && !yield(e) {
				return
			}
		}
	}
}

// BlockingEntityAt returns an entity at (x, y) that blocks movement, or nil.
func (m *Map) BlockingEntityAt(x, y int) *Entity {
	for _, e := range m.entities {
		if e.BlocksMovement && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// LivingActorAt returns a living actor at (x, y), or nil.
func (m *Map) LivingActorAt(x, y int) *Entity {
	for _, e := range m.entities {
		if e.IsAlive() && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// ItemsAt returns the items lying at (x, y).
func (m *Map) ItemsAt(x, y int) []*Entity {
	var out []*Entity
	for e := range m.Items() {
		if e.X == x && e.Y == y {
			out = append(out, e)
		}
	}
	return out
}

// EntityAt reports whether any entity stands at (x, y).
func (m *Map) EntityAt(x, y int) bool {
	return slices.ContainsFunc(m.entities, func(e *Entity) bool { return e.X == x && e.Y == y })
}
