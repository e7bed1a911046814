package usecase

import (
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

// pendingEvents holds game events until the change that produced them is stored.
type pendingEvents struct {
	events []func(observer tictactoe.Observer)
}

func (that *pendingEvents) OnBoardChanged(board [9]string) {
	that.events = append(that.events, func(observer tictactoe.Observer) { observer.OnBoardChanged(board) })
}

func (that *pendingEvents) OnStatusChanged(current entity.Player) {
	that.events = append(that.events, func(observer tictactoe.Observer) { observer.OnStatusChanged(current) })
}

func (that *pendingEvents) OnGameOver(result tictactoe.MoveResult) {
	that.events = append(that.events, func(observer tictactoe.Observer) { observer.OnGameOver(result) })
}

// flush delivers the held events in order and forgets them.
func (that *pendingEvents) flush(observer tictactoe.Observer) {
	if observer != nil {
		for _, event := range that.events {
			event(observer)
		}
	}

	that.events = nil
}
