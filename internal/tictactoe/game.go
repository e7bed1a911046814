package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"
)

type ResultKind int

const (
	NoEffect ResultKind = iota
	Continue
	GameOver
)

func (that ResultKind) String() string {
	switch that {
	case NoEffect:
		return "no_effect"
	case Continue:
		return "continue"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(that))
	}
}

// MoveResult is what PlayTurn reports back.
//   - NoEffect: nothing changed.
//   - Continue: NextPlayer is the player to move now.
//   - GameOver: Outcome is set, Winner is nil for a tie.
type MoveResult struct {
	Kind       ResultKind
	NextPlayer entity.Player
	Outcome    *Outcome
	Winner     *entity.Player
}

// Game coordinates turns of two players over a Board. It is not safe for
// concurrent use; callers serialise moves.
type Game struct {
	board    Board
	players  [2]entity.Player
	current  int
	started  bool
	over     bool
	outcome  *Outcome
	observer Observer
}

func NewGame(observer Observer) *Game {
	if observer == nil {
		observer = ObserverFuncs{}
	}

	return &Game{observer: observer}
}

// Start begins a new game between two players. Blank names fall back to the defaults.
func (that *Game) Start(name1, name2 string) {
	that.players = [2]entity.Player{
		{Name: nameOrDefault(name1, DefaultPlayer1Name), Mark: entity.PlayerX},
		{Name: nameOrDefault(name2, DefaultPlayer2Name), Mark: entity.PlayerO},
	}
	that.started = true

	that.restart()
}

// Reset empties the board and gives the first move back to player one. Players are kept.
func (that *Game) Reset() error {
	if !that.started {
		return apperror.ErrGameIsNotStarted
	}

	that.restart()

	return nil
}

// CurrentPlayer returns the player whose mark goes down next.
func (that *Game) CurrentPlayer() (entity.Player, error) {
	if !that.started {
		return entity.Player{}, apperror.ErrGameIsNotStarted
	}

	return that.players[that.current], nil
}

// IsOver reports whether the game has a winner or a tie.
func (that *Game) IsOver() bool {
	return that.over
}

// IsStarted reports whether Start has been called.
func (that *Game) IsStarted() bool {
	return that.started
}

// Board returns a copy of the grid.
func (that *Game) Board() [9]string {
	return that.board.Cells()
}

// Players returns both players, X first.
func (that *Game) Players() [2]entity.Player {
	return that.players
}

// Outcome returns the terminal outcome, or nil while the game is not over.
func (that *Game) Outcome() *Outcome {
	return that.outcome
}

// PlayTurn places the current player's mark on cell.
func (that *Game) PlayTurn(cell int) (MoveResult, error) {
	if !that.started {
		return MoveResult{}, apperror.ErrGameIsNotStarted
	}

	if that.over {
		return MoveResult{Kind: NoEffect}, nil
	}

	player := that.players[that.current]

	placed, err := that.board.Place(cell, player.Mark)
	if err != nil {
		return MoveResult{}, fmt.Errorf("invalid turn: %w", err)
	}

	if !placed {
		return MoveResult{Kind: NoEffect}, nil
	}

	that.observer.OnBoardChanged(that.board.Cells())

	if outcome := that.board.Evaluate(); outcome != nil {
		that.over = true
		that.outcome = outcome

		result := that.gameOverResult()
		that.observer.OnGameOver(result)

		return result, nil
	}

	that.current = toggleIndex(that.current)
	next := that.players[that.current]
	that.observer.OnStatusChanged(next)

	return MoveResult{Kind: Continue, NextPlayer: next}, nil
}

func (that *Game) restart() {
	that.board.Reset()
	that.current = 0
	that.over = false
	that.outcome = nil

	that.observer.OnBoardChanged(that.board.Cells())
	that.observer.OnStatusChanged(that.players[that.current])
}

func (that *Game) gameOverResult() MoveResult {
	result := MoveResult{Kind: GameOver, Outcome: that.outcome}

	if !that.outcome.IsTie() {
		for i := range that.players {
			if that.players[i].Mark == that.outcome.Winner {
				winner := that.players[i]
				result.Winner = &winner
			}
		}
	}

	return result
}

func nameOrDefault(name, def string) string {
	if name = strings.TrimSpace(name); name == "" {
		return def
	}

	return name
}

func toggleIndex(current int) int {
	return 1 - current
}
