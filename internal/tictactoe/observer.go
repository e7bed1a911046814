package tictactoe

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

// Observer receives the state changes a presentation layer has to render.
// Callbacks run synchronously inside the Game call that caused them.
type Observer interface {
	OnBoardChanged(board [9]string)
	OnStatusChanged(current entity.Player)
	OnGameOver(result MoveResult)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	BoardChanged  func(board [9]string)
	StatusChanged func(current entity.Player)
	GameOver      func(result MoveResult)
}

func (that ObserverFuncs) OnBoardChanged(board [9]string) {
	if that.BoardChanged != nil {
		that.BoardChanged(board)
	}
}

func (that ObserverFuncs) OnStatusChanged(current entity.Player) {
	if that.StatusChanged != nil {
		that.StatusChanged(current)
	}
}

func (that ObserverFuncs) OnGameOver(result MoveResult) {
	if that.GameOver != nil {
		that.GameOver(result)
	}
}
