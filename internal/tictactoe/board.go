package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")

	// WinCombos are checked in this order; the first complete one wins.
	WinCombos = []Triple{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Triple is three cell indexes forming a line.
type Triple [3]int

// Outcome describes a finished board. Triple is nil for a tie.
type Outcome struct {
	Winner string
	Triple *Triple
}

// IsTie reports whether the board filled up without a winner.
func (that Outcome) IsTie() bool {
	return that.Winner == entity.PlayerTie
}

// Board is a 3x3 grid stored row-major.
type Board struct {
	cells [9]string
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [9]string {
	return that.cells
}

// Place puts mark on an empty cell. It reports false and leaves the board
// untouched when the cell is already occupied.
func (that *Board) Place(cell int, mark string) (bool, error) {
	if cell < 0 || cell >= len(that.cells) {
		return false, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !isPlayerMark(mark) {
		return false, fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that.cells[cell] != entity.EmptyCell {
		return false, nil
	}

	that.cells[cell] = mark

	return true, nil
}

// Reset empties every cell.
func (that *Board) Reset() {
	that.cells = [9]string{}
}

// Evaluate returns the winning line, a tie on a full board, or nil while the game can continue.
func (that *Board) Evaluate() *Outcome {
	return evaluate(that.cells)
}

func evaluate(cells [9]string) *Outcome {
	for _, combo := range WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			triple := combo
			return &Outcome{Winner: a, Triple: &triple}
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range cells {
		if cell == entity.EmptyCell {
			return nil
		}
	}

	return &Outcome{Winner: entity.PlayerTie}
}

func isPlayerMark(mark string) bool {
	return mark == entity.PlayerX || mark == entity.PlayerO
}
