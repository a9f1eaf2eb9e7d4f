package procgen

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/game"
)

// Generate builds floor number floor. Rooms are placed by rejection
// sampling, each new room joined to the previous one by an L-shaped
// corridor, so every room is reachable from the first. The player is placed
// at the center of the first room and the down stairs at the center of the
// last. Every room but the first is populated from table, which may be nil.
//
// When no room fits the map is returned solid with the player at its center.
func Generate(p Params, rng *RNG, player *game.Entity, table *game.SpawnTable, floor int) (*game.Map, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	m := game.NewMap(p.MapWidth, p.MapHeight)

	for range p.MaxRooms {
		w := rng.Range(p.RoomMinSize, p.RoomMaxSize)
		h := rng.Range(p.RoomMinSize, p.RoomMaxSize)
		if w >= p.MapWidth || h >= p.MapHeight {
			continue
		}
		room := game.NewRect(rng.Range(0, p.MapWidth-w-1), rng.Range(0, p.MapHeight-h-1), w, h)

		if intersectsAny(room, m.Rooms) {
			continue
		}

		for c := range room.Inner() {
			m.SetTile(c.X, c.Y, game.TileFloor)
		}
		// Rooms too thin to have an interior still get their center.
		center := room.Center()
		m.SetTile(center.X, center.Y, game.TileFloor)
		if len(m.Rooms) > 0 {
			tunnel(m, rng, m.Rooms[len(m.Rooms)-1].Center(), center)
		}
		m.Rooms = append(m.Rooms, room)
	}

	if len(m.Rooms) == 0 {
		m.Start = game.Point{X: p.MapWidth / 2, Y: p.MapHeight / 2}
		m.DownStairs = m.Start
		slog.Warn("no rooms fit, returning solid map", "floor", floor, "width", p.MapWidth, "height", p.MapHeight)
	} else {
		m.Start = m.Rooms[0].Center()
		m.DownStairs = m.Rooms[len(m.Rooms)-1].Center()
		m.SetTile(m.DownStairs.X, m.DownStairs.Y, game.TileDownStairs)
	}

	if player != nil {
		if err := player.Place(m.Start.X, m.Start.Y, m); err != nil {
			return nil, fmt.Errorf("placing player: %w", err)
		}
	}

	if table != nil {
		for _, room := range m.Rooms[min(1, len(m.Rooms)):] {
			populate(m, rng, room, table, p, floor)
		}
	}

	return m, nil
}

func intersectsAny(r game.Rect, rooms []game.Rect) bool {
	for _, o := range rooms {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// tunnel carves two straight segments from a to b meeting at a corner
// chosen by coin flip.
func tunnel(m *game.Map, rng *RNG, a, b game.Point) {
	corner := game.Point{X: b.X, Y: a.Y}
	if rng.Bool() {
		corner = game.Point{X: a.X, Y: b.Y}
	}
	carveLine(m, a, corner)
	carveLine(m, corner, b)
}

// carveLine carves floor along a horizontal or vertical segment, leaving
// stairs intact.
func carveLine(m *game.Map, from, to game.Point) {
	dx, dy := step(to.X-from.X), step(to.Y-from.Y)
	for p := from; ; p = (game.Point{X: p.X + dx, Y: p.Y + dy}) {
		if m.Tile(p.X, p.Y) == game.TileWall {
			m.SetTile(p.X, p.Y, game.TileFloor)
		}
		if p == to {
			return
		}
	}
}

func step(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// populate spawns monsters then items at random interior cells of room. A
// roll that lands on an occupied cell or on the down stairs is dropped, so
// a player arriving by the stairs never shares a cell with a blocker.
func populate(m *game.Map, rng *RNG, room game.Rect, table *game.SpawnTable, p Params, floor int) {
	if room.X2-room.X1 < 2 || room.Y2-room.Y1 < 2 {
		return
	}
	monsters := rng.Range(0, p.MaxMonstersPerRoom)
	items := rng.Range(0, p.MaxItemsPerRoom)

	spawn := func(pick func(game.Roller, int) *game.Entity) {
		x := rng.Range(room.X1+1, room.X2-1)
		y := rng.Range(room.Y1+1, room.Y2-1)
		if m.EntityAt(x, y) || (game.Point{X: x, Y: y}) == m.DownStairs {
			return
		}
		proto := pick(rng, floor)
		if proto == nil {
			return
		}
		game.SpawnWith(rng.NewID, proto, m, x, y)
	}

	for range monsters {
		spawn(table.PickMonster)
	}
	for range items {
		spawn(table.PickItem)
	}
}
