package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLobby(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 8)

	assert.NotEmpty(t, lobby.ID)
	assert.Equal(t, "ABCDEF", lobby.Code)
	assert.Equal(t, StatusWaiting, lobby.Status)
	require.Len(t, lobby.Players, 1)
	assert.Equal(t, "Alice", lobby.Players[0].Name)
	assert.True(t, lobby.Players[0].IsHost)
	assert.False(t, lobby.Players[0].IsReady)
}

func TestRemovePlayer_HostHandoff(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 8)
	bob := lobby.AddPlayer("Bob")
	cara := lobby.AddPlayer("Cara")

	require.True(t, lobby.RemovePlayer(lobby.Players[0].ID))

	// Bob joined first, so Bob inherits the host flag.
	require.Len(t, lobby.Players, 2)
	assert.Equal(t, bob.ID, lobby.Players[0].ID)
	assert.True(t, lobby.Players[0].IsHost)
	assert.False(t, cara.IsHost)
}

func TestRemovePlayer_NonHostKeepsHost(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 8)
	bob := lobby.AddPlayer("Bob")

	require.True(t, lobby.RemovePlayer(bob.ID))

	require.Len(t, lobby.Players, 1)
	assert.True(t, lobby.Players[0].IsHost)
}

func TestRemovePlayer_Unknown(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 8)
	assert.False(t, lobby.RemovePlayer("nope"))
	assert.Len(t, lobby.Players, 1)
}

func TestGuestsReady_IgnoresHost(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 8)
	bob := lobby.AddPlayer("Bob")
	cara := lobby.AddPlayer("Cara")

	assert.False(t, lobby.GuestsReady())

	bob.IsReady = true
	cara.IsReady = true
	// Host never toggled ready; that must not matter.
	assert.True(t, lobby.GuestsReady())

	cara.IsReady = false
	assert.False(t, lobby.GuestsReady())
}

func TestIsFull(t *testing.T) {
	lobby := NewLobby("ABCDEF", "Alice", 2)
	assert.False(t, lobby.IsFull())
	lobby.AddPlayer("Bob")
	assert.True(t, lobby.IsFull())
}
