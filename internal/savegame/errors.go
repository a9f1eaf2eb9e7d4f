package savegame

import "errors"

var (
	// ErrNoSave means there is no save file. Callers usually start a new
	// game.
	ErrNoSave = errors.New("no save file")

	// ErrCorrupt means a save exists but cannot be turned back into a
	// session. Nothing is returned alongside it.
	ErrCorrupt = errors.New("save data is corrupt")
)
