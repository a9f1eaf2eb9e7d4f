package game

import (
	"cmp"
	"slices"
)

// Cell is one composed cell of a Snapshot.
type Cell struct {
	Glyph
	// Entity is the id of the entity drawn on this cell, if any.
	Entity string `json:"entity,omitempty"`
}

// Snapshot is the composed appearance of a map, row-major.
type Snapshot struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// At returns the cell at (x, y). It panics when out of range.
func (s Snapshot) At(x, y int) Cell {
	return s.Cells[y*s.Width+x]
}

// String renders the snapshot runes as text lines, mostly for debugging and
// tests.
func (s Snapshot) String() string {
	buf := make([]rune, 0, (s.Width+1)*s.Height)
	for y := range s.Height {
		for x := range s.Width {
			buf = append(buf, s.At(x, y).Rune)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// RenderSnapshot composes the map in two passes. Terrain uses the light
// glyph for visible cells, the dark glyph for explored cells and the shroud
// otherwise. Entities on visible cells are then drawn in ascending render
// order; among equal orders placement order decides, later over earlier.
func (m *Map) RenderSnapshot() Snapshot {
	s := Snapshot{
		Width:  m.Width,
		Height: m.Height,
		Cells:  make([]Cell, len(m.tiles)),
	}

	for i, kind := range m.tiles {
		switch t := kind.Tile(); {
		case m.visible[i]:
			s.Cells[i].Glyph = t.Light
		case m.explored[i]:
			s.Cells[i].Glyph = t.Dark
		default:
			s.Cells[i].Glyph = Shroud
		}
	}

	ordered := slices.Clone(m.entities)
	slices.SortStableFunc(ordered, func(a, b *Entity) int {
		return cmp.Compare(a.RenderOrder, b.RenderOrder)
	})
	for _, e := range ordered {
		if !m.Visible(e.X, e.Y) {
			continue
		}
		c := &s.Cells[m.index(e.X, e.Y)]
		c.Rune = e.Glyph
		c.Fg = e.Color
		c.Entity = e.Id
	}
	return s
}
