package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Game is the serialisable state of one hot-seat game, keyed by the browser session.
type Game struct {
	ID            string    `json:"id"`
	Board         [9]string `json:"board"`
	Players       [2]Player `json:"players"`
	Turn          string    `json:"player_turn"`
	Winner        string    `json:"winner"`
	WinningTriple []int     `json:"winning_triple,omitempty"`
	Status        string    `json:"status"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Status: StatusWaiting,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}
