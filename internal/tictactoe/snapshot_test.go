package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_Snapshot(t *testing.T) {
	t.Run("Not started game is waiting", func(t *testing.T) {
		snapshot := NewGame(nil).Snapshot("s1")

		assert.Equal(t, entity.NewGame("s1"), snapshot)
	})

	t.Run("Ongoing game carries the turn", func(t *testing.T) {
		game := startedGame(t)
		playAll(t, game, 4)

		snapshot := game.Snapshot("s1")

		expected := &entity.Game{
			ID:      "s1",
			Board:   [9]string{e, e, e, e, x, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Turn:    entity.PlayerO,
			Status:  entity.StatusOngoing,
		}
		assert.Equal(t, expected, snapshot)
	})

	t.Run("Finished game carries winner and triple", func(t *testing.T) {
		game := startedGame(t)
		playAll(t, game, 0, 4, 1, 5, 2)

		snapshot := game.Snapshot("s1")

		assert.Equal(t, entity.StatusFinished, snapshot.Status)
		assert.Equal(t, entity.PlayerX, snapshot.Winner)
		assert.Equal(t, []int{0, 1, 2}, snapshot.WinningTriple)
		assert.Empty(t, snapshot.Turn)
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trip of an ongoing game", func(t *testing.T) {
		// Given: a game in progress with O to move
		game := startedGame(t)
		playAll(t, game, 0, 4, 8)

		// When: it is restored from its snapshot
		restored, err := Restore(game.Snapshot("s1"), nil)
		require.NoError(t, err)

		// Then: the restored game continues where the original stopped
		assert.Equal(t, game.Board(), restored.Board())
		assert.Equal(t, game.Players(), restored.Players())
		current, err := restored.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, bo, current)

		result := playAll(t, restored, 2)
		assert.Equal(t, Continue, result.Kind)
	})

	t.Run("Round trip of a finished game", func(t *testing.T) {
		game := startedGame(t)
		playAll(t, game, 0, 4, 1, 5, 2)

		restored, err := Restore(game.Snapshot("s1"), nil)
		require.NoError(t, err)

		assert.True(t, restored.IsOver())
		require.NotNil(t, restored.Outcome())
		assert.Equal(t, Triple{0, 1, 2}, *restored.Outcome().Triple)

		result, err := restored.PlayTurn(3)
		require.NoError(t, err)
		assert.Equal(t, NoEffect, result.Kind)
	})

	t.Run("Waiting snapshot restores a not started game", func(t *testing.T) {
		restored, err := Restore(entity.NewGame("s1"), nil)
		require.NoError(t, err)

		assert.False(t, restored.IsStarted())
	})

	corrupted := map[string]*entity.Game{
		"unknown cell value": {
			Board:   [9]string{"Z"},
			Players: [2]entity.Player{ann, bo},
			Turn:    entity.PlayerX,
			Status:  entity.StatusOngoing,
		},
		"marks on a waiting game": {
			Board:  [9]string{x},
			Status: entity.StatusWaiting,
		},
		"swapped player marks": {
			Players: [2]entity.Player{bo, ann},
			Turn:    entity.PlayerX,
			Status:  entity.StatusOngoing,
		},
		"nameless player": {
			Players: [2]entity.Player{{Mark: entity.PlayerX}, bo},
			Turn:    entity.PlayerX,
			Status:  entity.StatusOngoing,
		},
		"too many X marks": {
			Board:   [9]string{x, x, e, e, e, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Turn:    entity.PlayerO,
			Status:  entity.StatusOngoing,
		},
		"wrong turn": {
			Board:   [9]string{x, e, e, e, e, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Turn:    entity.PlayerX,
			Status:  entity.StatusOngoing,
		},
		"ongoing game with a line": {
			Board:   [9]string{x, x, x, o, o, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Turn:    entity.PlayerO,
			Status:  entity.StatusOngoing,
		},
		"finished game without a line": {
			Board:   [9]string{x, o, e, e, e, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Winner:  entity.PlayerX,
			Status:  entity.StatusFinished,
		},
		"winner does not match the board": {
			Board:   [9]string{x, x, x, o, o, e, e, e, e},
			Players: [2]entity.Player{ann, bo},
			Winner:  entity.PlayerO,
			Status:  entity.StatusFinished,
		},
		"O wins after X moved last": {
			Board:   [9]string{o, o, o, x, x, e, x, x, e},
			Players: [2]entity.Player{ann, bo},
			Winner:  entity.PlayerO,
			Status:  entity.StatusFinished,
		},
		"unknown status": {
			Players: [2]entity.Player{ann, bo},
			Status:  "paused",
		},
	}

	for name, snapshot := range corrupted {
		t.Run("Rejects "+name, func(t *testing.T) {
			_, err := Restore(snapshot, nil)

			require.ErrorIs(t, err, apperror.ErrCorruptedSnapshot)
		})
	}
}
