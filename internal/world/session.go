package world

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/procgen"
)

// FOVRadius is how far the player can see.
const FOVRadius = 8

// Session is one game in progress: the floors generated so far, which one
// the player is on, and the random source that generates the rest.
type Session struct {
	Player *game.Entity
	Params procgen.Params
	RNG    *procgen.RNG

	floors  []*game.Map
	current int
	table   *game.SpawnTable
}

// NewSession returns a session with no floors yet. Call GenerateFloor to
// create the first one.
func NewSession(player *game.Entity, params procgen.Params, rng *procgen.RNG, table *game.SpawnTable) *Session {
	return &Session{
		Player:  player,
		Params:  params,
		RNG:     rng,
		table:   table,
		current: -1,
	}
}

// RestoreSession rebuilds a session from previously saved parts. The player
// must already be attached to floors[current].
func RestoreSession(floors []*game.Map, current int, player *game.Entity, params procgen.Params, rng *procgen.RNG) (*Session, error) {
	if current < 0 || current >= len(floors) {
		return nil, fmt.Errorf("floor %d of %d: %w", current, len(floors), ErrNoFloor)
	}
	if player == nil || player.GameMap() != floors[current] {
		return nil, ErrPlayerNotOnFloor
	}
	return &Session{
		Player:  player,
		Params:  params,
		RNG:     rng,
		floors:  floors,
		current: current,
	}, nil
}

// SetSpawnTable sets the table new floors are populated from. Saved
// sessions do not carry one.
func (s *Session) SetSpawnTable(table *game.SpawnTable) {
	s.table = table
}

// Floors returns the generated floors, shallowest first.
func (s *Session) Floors() []*game.Map {
	return s.floors
}

// CurrentIndex is the index of the current floor in Floors, or -1.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Depth is the 1-based number of the current floor.
func (s *Session) Depth() int {
	return s.current + 1
}

// Current returns the floor the player is on, or nil before the first floor
// is generated.
func (s *Session) Current() *game.Map {
	if s.current < 0 || s.current >= len(s.floors) {
		return nil
	}
	return s.floors[s.current]
}

// GenerateFloor generates the next floor below the deepest one, moves the
// player onto its start cell and makes it current. Only the player's
// position changes; its stats and inventory are untouched.
func (s *Session) GenerateFloor() error {
	depth := len(s.floors) + 1
	m, err := procgen.Generate(s.Params.ForFloor(depth), s.RNG, s.Player, s.table, depth)
	if err != nil {
		return fmt.Errorf("generating floor %d: %w", depth, err)
	}

	s.floors = append(s.floors, m)
	s.current = len(s.floors) - 1
	s.UpdateFOV()

	slog.Info("generated floor", "depth", depth, "rooms", len(m.Rooms), "entities", m.Len())
	return nil
}

// Descend moves the player down one floor, reusing it if it was generated
// before.
func (s *Session) Descend() error {
	if s.Current() == nil {
		return ErrNoFloor
	}
	if s.current+1 >= len(s.floors) {
		return s.GenerateFloor()
	}
	next := s.floors[s.current+1]
	return s.moveTo(s.current+1, next.Start)
}

// Ascend moves the player up one floor onto that floor's down stairs.
func (s *Session) Ascend() error {
	if s.Current() == nil {
		return ErrNoFloor
	}
	if s.current == 0 {
		return ErrTopFloor
	}
	prev := s.floors[s.current-1]
	return s.moveTo(s.current-1, prev.DownStairs)
}

func (s *Session) moveTo(idx int, at game.Point) error {
	if err := s.Player.Place(at.X, at.Y, s.floors[idx]); err != nil {
		return fmt.Errorf("placing player: %w", err)
	}
	s.current = idx
	s.UpdateFOV()
	return nil
}

// UpdateFOV recomputes the current floor's field of view from the player.
func (s *Session) UpdateFOV() {
	if m := s.Current(); m != nil {
		m.UpdateFOV(s.Player.X, s.Player.Y, FOVRadius)
	}
}

// Status summarises the player's situation.
type Status struct {
	Name    string `json:"name"`
	Depth   int    `json:"depth"`
	Floors  int    `json:"floors"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Power   int    `json:"power"`
	Defense int    `json:"defense"`
	Level   int    `json:"level"`
	XP      int    `json:"xp"`
	Alive   bool   `json:"alive"`
	Items   int    `json:"items"`
}

func (s *Session) Status() Status {
	p := s.Player
	st := Status{
		Name:   p.Name,
		Depth:  s.Depth(),
		Floors: len(s.floors),
		X:      p.X,
		Y:      p.Y,
		Alive:  p.IsAlive(),
	}
	if p.Fighter != nil {
		st.HP, st.MaxHP = p.Fighter.HP, p.Fighter.MaxHP
		st.Power, st.Defense = p.Fighter.Power(), p.Fighter.Defense()
	}
	if p.Level != nil {
		st.Level, st.XP = p.Level.Current, p.Level.XP
	}
	if p.Inventory != nil {
		st.Items = p.Inventory.Len()
	}
	return st
}

// Census counts what is on the current floor by template id: living actors
// other than the player, and items lying on the floor. Entities built
// without a template are counted by name.
type Census struct {
	Actors map[string]int `json:"actors"`
	Items  map[string]int `json:"items"`
}

func (s *Session) Census() Census {
	c := Census{Actors: map[string]int{}, Items: map[string]int{}}
	m := s.Current()
	if m == nil {
		return c
	}
	key := func(e *game.Entity) string {
		if id := e.TemplateId(); id != "" {
			return id
		}
		return e.Name
	}
	for e := range m.Actors() {
		if e != s.Player {
			c.Actors[key(e)]++
		}
	}
	for e := range m.Items() {
		c.Items[key(e)]++
	}
	return c
}
