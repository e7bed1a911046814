package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs one hot-seat game per browser session. Every operation
// loads the session's snapshot, applies the change and stores it again;
// operations are applied one at a time so moves never interleave. Observer
// events reach the caller only once the change is stored.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

// StartGame begins a new game for the session with two new players, replacing any previous game.
func (that *GameManager) StartGame(ctx context.Context, sessionID, name1, name2 string, observer tictactoe.Observer) (*entity.Game, error) {
	name1, name2 = strings.TrimSpace(name1), strings.TrimSpace(name2)
	if name1 == "" || name2 == "" {
		return nil, apperror.ErrBlankPlayerName
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	events := &pendingEvents{}
	game := tictactoe.NewGame(events)
	game.Start(name1, name2)

	snapshot, err := that.save(ctx, sessionID, game)
	if err != nil {
		return nil, err
	}

	events.flush(observer)
	that.logger.Info("game started", "session", sessionID)

	return snapshot, nil
}

// RestartGame clears the board of the session's game and keeps its players.
func (that *GameManager) RestartGame(ctx context.Context, sessionID string, observer tictactoe.Observer) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	events := &pendingEvents{}

	game, err := that.load(ctx, sessionID, events)
	if err != nil {
		return nil, err
	}

	if err = game.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	snapshot, err := that.save(ctx, sessionID, game)
	if err != nil {
		return nil, err
	}

	events.flush(observer)

	return snapshot, nil
}

// PlayTurn plays the current player's mark on cell.
func (that *GameManager) PlayTurn(ctx context.Context, sessionID string, cell int, observer tictactoe.Observer) (tictactoe.MoveResult, *entity.Game, error) {
	log := that.logger.With("method", "PlayTurn", "session", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	events := &pendingEvents{}

	game, err := that.load(ctx, sessionID, events)
	if err != nil {
		return tictactoe.MoveResult{}, nil, err
	}

	result, err := game.PlayTurn(cell)
	if err != nil {
		return tictactoe.MoveResult{}, nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if result.Kind == tictactoe.NoEffect {
		log.Debug("turn had no effect", "cell", cell)
		return result, game.Snapshot(sessionID), nil
	}

	snapshot, err := that.save(ctx, sessionID, game)
	if err != nil {
		return tictactoe.MoveResult{}, nil, err
	}

	events.flush(observer)

	if result.Kind == tictactoe.GameOver {
		log.Info("game over", "winner", result.Outcome.Winner)
	}

	return result, snapshot, nil
}

// GetGame returns the session's game.
func (that *GameManager) GetGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, sessionID, nil)
	if err != nil {
		return nil, err
	}

	return game.Snapshot(sessionID), nil
}

// EndGame forgets the session's game; the next game needs StartGame.
func (that *GameManager) EndGame(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	err := that.gameRepo.DeleteByID(ctx, sessionID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return apperror.ErrGameIsNotStarted
	}

	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game ended", "session", sessionID)

	return nil
}

func (that *GameManager) load(ctx context.Context, sessionID string, observer tictactoe.Observer) (*tictactoe.Game, error) {
	snapshot, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, apperror.ErrGameIsNotStarted
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game, err := tictactoe.Restore(snapshot, observer)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if !game.IsStarted() {
		return nil, apperror.ErrGameIsNotStarted
	}

	return game, nil
}

func (that *GameManager) save(ctx context.Context, sessionID string, game *tictactoe.Game) (*entity.Game, error) {
	snapshot := game.Snapshot(sessionID)

	if err := that.gameRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return snapshot, nil
}
