package websocket

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

// socketObserver pushes game events to the browser as they happen.
type socketObserver struct {
	logger *slog.Logger
	conn   *connection
}

func (that *Server) observer(conn *connection) tictactoe.Observer {
	return &socketObserver{
		logger: that.logger.With("method", "observer", "session", conn.sessionID),
		conn:   conn,
	}
}

func (that *socketObserver) OnBoardChanged(board [9]string) {
	that.push(actionBoardChanged, BoardPayload{Board: board})
}

func (that *socketObserver) OnStatusChanged(current entity.Player) {
	that.push(actionStatusChange, StatusPayload{Player: current})
}

func (that *socketObserver) OnGameOver(result tictactoe.MoveResult) {
	payload := GameOverPayload{Winner: result.Outcome.Winner}

	if result.Winner != nil {
		payload.WinnerName = result.Winner.Name
	}

	if result.Outcome.Triple != nil {
		triple := *result.Outcome.Triple
		payload.Triple = triple[:]
	}

	that.push(actionGameOver, payload)
}

// push only logs failures; every reply also carries the full game state.
func (that *socketObserver) push(action string, payload any) {
	if err := that.conn.send(action, payload); err != nil {
		that.logger.Warn("failed to push event", "action", action, "error", err)
	}
}
