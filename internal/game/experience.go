package game

// DefaultLevelUpFactor is the extra XP each level adds to the next
// threshold when a template does not set one.
const DefaultLevelUpFactor = 150

// Level tracks experience for an actor. XPGiven is what the actor is worth
// when it dies.
type Level struct {
	Current       int `json:"current"`
	XP            int `json:"xp"`
	LevelUpBase   int `json:"level_up_base"`
	LevelUpFactor int `json:"level_up_factor"`
	XPGiven       int `json:"xp_given"`
}

// NewLevel returns a level-1 tracker.
func NewLevel(base, factor, given int) *Level {
	if factor == 0 {
		factor = DefaultLevelUpFactor
	}
	return &Level{Current: 1, LevelUpBase: base, LevelUpFactor: factor, XPGiven: given}
}

// XPToNextLevel is the XP required to leave the current level.
func (l *Level) XPToNextLevel() int {
	return l.LevelUpBase + l.Current*l.LevelUpFactor
}

// RequiresLevelUp reports whether enough XP has been banked to level up.
func (l *Level) RequiresLevelUp() bool {
	return l.XP > l.XPToNextLevel()
}

// AddXP banks amount and reports whether a level up is now due. Actors with
// no LevelUpBase never gain experience.
func (l *Level) AddXP(amount int) bool {
	if amount <= 0 || l.LevelUpBase == 0 {
		return false
	}
	l.XP += amount
	return l.RequiresLevelUp()
}

// IncreaseLevel spends the XP for one level.
func (l *Level) IncreaseLevel() {
	l.XP -= l.XPToNextLevel()
	l.Current++
}
