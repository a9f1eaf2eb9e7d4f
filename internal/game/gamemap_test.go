package game

import (
	"errors"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestMap_InBounds(t *testing.T) {
	m := NewMap(4, 3)
	tests := map[string]struct {
		x, y int
		exp  bool
	}{
		"origin":      {x: 0, y: 0, exp: true},
		"far corner":  {x: 3, y: 2, exp: true},
		"x too large": {x: 4, y: 0, exp: false},
		"y too large": {x: 0, y: 3, exp: false},
		"negative x":  {x: -1, y: 1, exp: false},
		"negative y":  {x: 1, y: -1, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "in bounds", m.InBounds(tt.x, tt.y), tt.exp)
		})
	}
}

func TestMap_Tiles(t *testing.T) {
	m := NewMap(3, 3)
	testutil.AssertEqual(t, "default wall", m.Tile(1, 1), TileWall)

	m.SetTile(1, 1, TileFloor)
	m.SetTile(9, 9, TileFloor)

	testutil.AssertEqual(t, "floor walkable", m.IsWalkable(1, 1), true)
	testutil.AssertEqual(t, "floor transparent", m.IsTransparent(1, 1), true)
	testutil.AssertEqual(t, "wall walkable", m.IsWalkable(0, 0), false)
	testutil.AssertEqual(t, "out of bounds walkable", m.IsWalkable(9, 9), false)
}

func TestMap_BlockingEntityAt(t *testing.T) {
	m := newOpenMap(5, 5)
	orc := Spawn(newTestOrc(), m, 2, 2)
	Spawn(newTestPotion(), m, 3, 3)
	troll := Spawn(newTestOrc(), m, 2, 2)

	got := m.BlockingEntityAt(2, 2)
	if got != orc && got != troll {
		t.Errorf("expected one of the blockers at (2,2)")
	}
	if m.BlockingEntityAt(3, 3) != nil {
		t.Errorf("item should not block")
	}

	orc.Kill()
	troll.Kill()
	if m.BlockingEntityAt(2, 2) != nil {
		t.Errorf("corpses should not block")
	}
}

func TestMap_LivingActorAt(t *testing.T) {
	m := newOpenMap(5, 5)
	corpse := Spawn(newTestOrc(), m, 1, 1)
	corpse.Kill()
	Spawn(newTestPotion(), m, 1, 1)

	if m.LivingActorAt(1, 1) != nil {
		t.Errorf("expected no living actor among a corpse and an item")
	}

	live := Spawn(newTestOrc(), m, 1, 1)
	if m.LivingActorAt(1, 1) != live {
		t.Errorf("expected the living orc")
	}
}

func TestMap_Actors(t *testing.T) {
	m := newOpenMap(5, 5)
	a := Spawn(newTestOrc(), m, 0, 0)
	b := Spawn(newTestOrc(), m, 1, 0)
	Spawn(newTestPotion(), m, 2, 0)
	actors := m.Actors()

	testutil.AssertEqual(t, "initial", len(slices.Collect(actors)), 2)

	a.Kill()
	c := Spawn(newTestOrc(), m, 3, 0)
	got := slices.Collect(actors)
	testutil.AssertEqual(t, "after changes", len(got), 2)
	if !slices.Contains(got, b) || !slices.Contains(got, c) {
		t.Errorf("sequence does not reflect current membership")
	}

	// Restartable and safe to mutate during iteration.
	for e := range m.Actors() {
		e.Remove()
	}
	testutil.AssertEqual(t, "after removal", len(slices.Collect(actors)), 0)
}

func TestNewMapFromGrids(t *testing.T) {
	tests := map[string]struct {
		w, h   int
		tiles  []TileKind
		expErr error
	}{
		"valid": {
			w: 2, h: 2,
			tiles: []TileKind{TileWall, TileFloor, TileDownStairs, TileFloor},
		},
		"short grid": {
			w: 2, h: 2,
			tiles:  []TileKind{TileWall},
			expErr: ErrBadGrid,
		},
		"unknown tile": {
			w: 2, h: 2,
			tiles:  []TileKind{TileWall, TileFloor, TileKind(42), TileFloor},
			expErr: ErrBadGrid,
		},
		"zero size": {
			w: 0, h: 2,
			expErr: ErrBadGrid,
		},
		"size overflows to empty grids": {
			w: 1 << 32, h: 1 << 32,
			expErr: ErrBadGrid,
		},
		"too wide": {
			w: MaxMapSize + 1, h: 1,
			tiles:  make([]TileKind, MaxMapSize+1),
			expErr: ErrBadGrid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n := max(tt.w*tt.h, 0)
			visible := make([]bool, n)
			explored := make([]bool, n)

			m, err := NewMapFromGrids(tt.w, tt.h, tt.tiles, visible, explored)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "stairs", m.Tile(0, 1), TileDownStairs)
			testutil.AssertEqual(t, "tiles", slices.Equal(m.Tiles(), tt.tiles), true)
		})
	}
}

func TestRect(t *testing.T) {
	r := NewRect(1, 1, 4, 4)
	testutil.AssertEqual(t, "center", r.Center(), Point{X: 3, Y: 3})
	testutil.AssertEqual(t, "inner cells", len(slices.Collect(r.Inner())), 9)
	testutil.AssertEqual(t, "contains inner", r.Contains(2, 2), true)
	testutil.AssertEqual(t, "wall not inner", r.Contains(1, 2), false)
	testutil.AssertEqual(t, "touching intersects", r.Intersects(NewRect(5, 1, 3, 3)), true)
	testutil.AssertEqual(t, "apart", r.Intersects(NewRect(6, 1, 3, 3)), false)
}

func TestMap_UpdateFOV(t *testing.T) {
	// A wall splits a 7x3 room in two at x=3.
	m := newOpenMap(7, 3)
	for y := range 3 {
		m.SetTile(3, y, TileWall)
	}

	m.UpdateFOV(1, 1, 8)

	testutil.AssertEqual(t, "origin", m.Visible(1, 1), true)
	testutil.AssertEqual(t, "same side", m.Visible(0, 0), true)
	testutil.AssertEqual(t, "wall face", m.Visible(3, 1), true)
	testutil.AssertEqual(t, "behind wall", m.Visible(5, 1), false)
	testutil.AssertEqual(t, "explored", m.Explored(2, 2), true)

	m.UpdateFOV(5, 1, 8)
	testutil.AssertEqual(t, "old side no longer visible", m.Visible(1, 1), false)
	testutil.AssertEqual(t, "old side still explored", m.Explored(1, 1), true)
	testutil.AssertEqual(t, "new side", m.Visible(6, 2), true)
}
