package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Snapshot captures the game under the given id.
func (that *Game) Snapshot(id string) *entity.Game {
	snapshot := entity.NewGame(id)
	if !that.started {
		return snapshot
	}

	snapshot.Board = that.board.Cells()
	snapshot.Players = that.players

	if !that.over {
		snapshot.Status = entity.StatusOngoing
		snapshot.Turn = that.players[that.current].Mark

		return snapshot
	}

	snapshot.Status = entity.StatusFinished
	snapshot.Winner = that.outcome.Winner
	if that.outcome.Triple != nil {
		triple := *that.outcome.Triple
		snapshot.WinningTriple = triple[:]
	}

	return snapshot
}

// Restore rebuilds a game from a snapshot. Snapshots that could not have been
// produced by a legal sequence of turns are rejected.
func Restore(snapshot *entity.Game, observer Observer) (*Game, error) {
	game := NewGame(observer)

	xCount, oCount, err := countMarks(snapshot.Board)
	if err != nil {
		return nil, err
	}

	if snapshot.IsWaiting() {
		if xCount+oCount != 0 {
			return nil, fmt.Errorf("%w: waiting game has marks", apperror.ErrCorruptedSnapshot)
		}

		return game, nil
	}

	if err = validatePlayers(snapshot.Players); err != nil {
		return nil, err
	}

	if xCount != oCount && xCount != oCount+1 {
		return nil, fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrCorruptedSnapshot, xCount, oCount)
	}

	game.board.cells = snapshot.Board
	game.players = snapshot.Players
	game.started = true

	outcome := game.board.Evaluate()

	switch {
	case snapshot.IsOngoing():
		if outcome != nil {
			return nil, fmt.Errorf("%w: ongoing game has an outcome", apperror.ErrCorruptedSnapshot)
		}

		expectedTurn := entity.PlayerX
		if xCount > oCount {
			expectedTurn = entity.PlayerO
		}

		if snapshot.Turn != expectedTurn {
			return nil, fmt.Errorf("%w: turn %q, expected %q", apperror.ErrCorruptedSnapshot, snapshot.Turn, expectedTurn)
		}

		if expectedTurn == entity.PlayerO {
			game.current = 1
		}
	case snapshot.IsFinished():
		if outcome == nil || outcome.Winner != snapshot.Winner {
			return nil, fmt.Errorf("%w: winner %q does not match the board", apperror.ErrCorruptedSnapshot, snapshot.Winner)
		}

		if (outcome.Winner == entity.PlayerX && xCount == oCount) || (outcome.Winner == entity.PlayerO && xCount > oCount) {
			return nil, fmt.Errorf("%w: %s cannot have won on this move count", apperror.ErrCorruptedSnapshot, outcome.Winner)
		}

		game.over = true
		game.outcome = outcome
	default:
		return nil, fmt.Errorf("%w: unknown game status %q", apperror.ErrCorruptedSnapshot, snapshot.Status)
	}

	return game, nil
}

func countMarks(board [9]string) (int, int, error) {
	var xCount, oCount int

	for i, cell := range board {
		switch cell {
		case entity.PlayerX:
			xCount++
		case entity.PlayerO:
			oCount++
		case entity.EmptyCell:
		default:
			return 0, 0, fmt.Errorf("%w: cell %d holds %q", apperror.ErrCorruptedSnapshot, i, cell)
		}
	}

	return xCount, oCount, nil
}

func validatePlayers(players [2]entity.Player) error {
	if players[0].Mark != entity.PlayerX || players[1].Mark != entity.PlayerO {
		return fmt.Errorf("%w: players must hold X and O", apperror.ErrCorruptedSnapshot)
	}

	for _, player := range players {
		if player.Name == "" {
			return fmt.Errorf("%w: player with mark %s has no name", apperror.ErrCorruptedSnapshot, player.Mark)
		}
	}

	return nil
}
