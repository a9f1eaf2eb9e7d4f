package game

// Roller is the random source a SpawnTable draws from.
type Roller interface {
	IntN(n int) int
}

// SpawnEntry is one weighted template in a SpawnTable.
type SpawnEntry struct {
	Id        string
	Prototype *Entity
	Weights   []SpawnWeight
}

// WeightAt returns the entry's weight on floor. An entry with no weights has
// weight 1 everywhere.
func (s SpawnEntry) WeightAt(floor int) int {
	if len(s.Weights) == 0 {
		return 1
	}
	weight, best := 0, 0
	for _, w := range s.Weights {
		if w.MinFloor <= floor && w.MinFloor >= best {
			weight, best = w.Weight, w.MinFloor
		}
	}
	return weight
}

// SpawnTable picks monster and item prototypes by floor depth.
type SpawnTable struct {
	Monsters []SpawnEntry
	Items    []SpawnEntry
}

// PickMonster draws a monster prototype for floor, or nil when none can
// appear there.
func (st *SpawnTable) PickMonster(r Roller, floor int) *Entity {
	return pick(st.Monsters, r, floor)
}

// PickItem draws an item prototype for floor, or nil when none can appear
// there.
func (st *SpawnTable) PickItem(r Roller, floor int) *Entity {
	return pick(st.Items, r, floor)
}

func pick(entries []SpawnEntry, r Roller, floor int) *Entity {
	total := 0
	for _, e := range entries {
		total += e.WeightAt(floor)
	}
	if total == 0 {
		return nil
	}
	n := r.IntN(total)
	for _, e := range entries {
		n -= e.WeightAt(floor)
		if n < 0 {
			return e.Prototype
		}
	}
	return nil
}
