package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		// Given: a stored game
		game := finishedGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own value
		game.Board[5] = entity.PlayerO
		game.WinningTriple[0] = 8

		// Then: the stored game is unaffected
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, finishedGame("123"), stored)

		// When: the returned value is mutated
		stored.WinningTriple[0] = 7

		// Then: the store is still unaffected
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, again.WinningTriple)
	})

	t.Run("Overwrites an existing game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, finishedGame("123")))

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.True(t, stored.IsWaiting())
	})

	t.Run("Not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, finishedGame("123")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
