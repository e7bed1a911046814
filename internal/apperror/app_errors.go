package apperror

import "errors"

var (
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrBlankPlayerName   = errors.New("player name is blank")
	ErrCorruptedSnapshot = errors.New("game snapshot is corrupted")
)
