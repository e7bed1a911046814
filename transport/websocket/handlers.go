package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var errCellRequired = errors.New("cell is required")

// handleConnect greets a new socket with its session and the game it left behind, if any.
func (that *Server) handleConnect(ctx context.Context, conn *connection) error {
	payload := ConnectPayload{SessionID: conn.sessionID}

	game, err := that.gameManager.GetGame(ctx, conn.sessionID)
	switch {
	case errors.Is(err, apperror.ErrGameIsNotStarted):
	case err != nil:
		// the browser can still start a new game over a broken snapshot
		that.logger.Error("failed to get game", "session", conn.sessionID, "error", err)
	default:
		payload.Game = game
	}

	return conn.send(actionConnect, payload)
}

func (that *Server) handleStartGame(ctx context.Context, conn *connection, req *Request) error {
	var payload StartPayload
	if err := decodePayload(req.Payload, &payload); err != nil {
		return err
	}

	game, err := that.gameManager.StartGame(ctx, conn.sessionID, payload.Player1, payload.Player2, that.observer(conn))
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return conn.send(actionGameState, GamePayload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, req *Request) error {
	var payload TurnPayload
	if err := decodePayload(req.Payload, &payload); err != nil {
		return err
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, errCellRequired)
	}

	result, game, err := that.gameManager.PlayTurn(ctx, conn.sessionID, *payload.Cell, that.observer(conn))
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return conn.send(actionGameTurn, TurnResultPayload{Result: result.Kind.String(), Game: game})
}

func (that *Server) handleRestartGame(ctx context.Context, conn *connection, _ *Request) error {
	game, err := that.gameManager.RestartGame(ctx, conn.sessionID, that.observer(conn))
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return conn.send(actionGameState, GamePayload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, _ *Request) error {
	game, err := that.gameManager.GetGame(ctx, conn.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	return conn.send(actionGameState, GamePayload{Game: game})
}

func (that *Server) handleEndGame(ctx context.Context, conn *connection, _ *Request) error {
	if err := that.gameManager.EndGame(ctx, conn.sessionID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return conn.send(actionGameEnd, nil)
}

// errorMessage turns an error into text that is safe to show in the browser.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPayload):
		return err.Error()
	case errors.Is(err, ErrUnknownAction):
		return ErrUnknownAction.Error()
	case errors.Is(err, apperror.ErrBlankPlayerName):
		return "both players need a name"
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		return apperror.ErrGameIsNotStarted.Error()
	case errors.Is(err, tictactoe.ErrInvalidCell):
		return tictactoe.ErrInvalidCell.Error()
	default:
		return "internal error"
	}
}
