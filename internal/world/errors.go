package world

import "errors"

var (
	ErrNoFloor          = errors.New("session has no current floor")
	ErrTopFloor         = errors.New("already on the top floor")
	ErrPlayerNotOnFloor = errors.New("player is not on the current floor")
	ErrNoPlayerTemplate = errors.New("no player template")
	ErrNoSession        = errors.New("no session loaded")
)
