package pictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundLifecycle(t *testing.T) {
	r := NewRound()
	assert.Equal(t, PhaseLobby, r.Phase())
	assert.False(t, r.CanDraw())

	r.BeginJoin()
	assert.Equal(t, PhaseAwaitingRole, r.Phase())
	assert.False(t, r.CanDraw())

	r.ApplyRole(RoleEvent{IsDrawer: true, Word: "cat"})
	assert.Equal(t, PhaseActive, r.Phase())
	assert.Equal(t, RoleDrawer, r.Role())
	assert.Equal(t, "cat", r.Word())
	assert.True(t, r.CanDraw())
	assert.False(t, r.CanGuess())

	r.ApplyWin(WinEvent{Name: "Bob"})
	assert.Equal(t, PhaseRoundWon, r.Phase())
	assert.Equal(t, "Bob", r.Winner())

	r.ApplyReset()
	assert.Equal(t, PhaseAwaitingRole, r.Phase())
	assert.Empty(t, r.Word())
	assert.Empty(t, r.Winner())

	r.ApplyRole(RoleEvent{IsDrawer: false})
	assert.Equal(t, PhaseActive, r.Phase())
	assert.Equal(t, RoleGuesser, r.Role())
	assert.Empty(t, r.Word(), "a guesser never holds the word")
	assert.False(t, r.CanDraw())
	assert.True(t, r.CanGuess())
}

func TestRoundResetInLobbyIsNoop(t *testing.T) {
	r := NewRound()
	r.ApplyReset()
	assert.Equal(t, PhaseLobby, r.Phase())
}

func TestRoundServerErrorDropsToLobby(t *testing.T) {
	r := NewRound()
	r.BeginJoin()
	r.ApplyRole(RoleEvent{IsDrawer: true, Word: "house"})

	r.ApplyServerError()
	assert.Equal(t, PhaseLobby, r.Phase())
	assert.True(t, r.Disconnected())
	assert.Empty(t, r.Word())
	assert.False(t, r.CanDraw())
	assert.False(t, r.CanGuess())

	// Not terminal: a re-join recovers.
	r.BeginJoin()
	assert.False(t, r.Disconnected())
	assert.Equal(t, PhaseAwaitingRole, r.Phase())
}
