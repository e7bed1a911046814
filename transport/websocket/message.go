package websocket

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	actionConnect      = "connect"
	actionError        = "error"
	actionGameStart    = "game:start"
	actionGameTurn     = "game:turn"
	actionGameRestart  = "game:restart"
	actionGameState    = "game:state"
	actionGameEnd      = "game:end"
	actionGameOver     = "game:over"
	actionBoardChanged = "board:changed"
	actionStatusChange = "status:changed"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")

	errNotWholeNumber = errors.New("not a whole number")
)

// Request is a message sent by the browser.
type Request struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is a message pushed to the browser.
type Response struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type StartPayload struct {
	Player1 string `mapstructure:"player1"`
	Player2 string `mapstructure:"player2"`
}

type TurnPayload struct {
	Cell *int `mapstructure:"cell"`
}

type ConnectPayload struct {
	SessionID string       `json:"session_id"`
	Game      *entity.Game `json:"game,omitempty"`
}

type GamePayload struct {
	Game *entity.Game `json:"game"`
}

type TurnResultPayload struct {
	Result string       `json:"result"`
	Game   *entity.Game `json:"game"`
}

type BoardPayload struct {
	Board [9]string `json:"board"`
}

type StatusPayload struct {
	Player entity.Player `json:"player"`
}

type GameOverPayload struct {
	Winner     string `json:"winner"`
	WinnerName string `json:"winner_name,omitempty"`
	Triple     []int  `json:"triple,omitempty"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// decodePayload decodes the loosely typed JSON payload into out, rejecting unknown keys.
func decodePayload(payload map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		DecodeHook:  mapstructure.DecodeHookFuncType(wholeNumberHook),
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}

// wholeNumberHook stops JSON numbers from being truncated into int fields.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}

	value := data.(float64)
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return nil, fmt.Errorf("%v is %w", value, errNotWholeNumber)
	}

	return int(value), nil
}
