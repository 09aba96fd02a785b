package services

import (
	"regexp"
	"testing"

	"github.com/MuIScX/Insider-o/internal/hub"
	"github.com/MuIScX/Insider-o/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLobbyService(maxPlayers int) *LobbyService {
	return NewLobbyService(hub.NewHub(), maxPlayers)
}

func TestCreateLobby(t *testing.T) {
	ls := newLobbyService(8)

	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{6}$`), lobby.Code)
	assert.Equal(t, models.StatusWaiting, lobby.Status)
	require.Len(t, lobby.Players, 1)
	assert.True(t, lobby.Players[0].IsHost)

	got, err := ls.GetLobby(lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, lobby, got)
}

func TestCreateLobby_EmptyHostName(t *testing.T) {
	ls := newLobbyService(8)

	_, err := ls.CreateLobby("")
	assert.ErrorIs(t, err, ErrHostNameRequired)
}

func TestCreateLobby_UniqueCodes(t *testing.T) {
	ls := newLobbyService(8)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		lobby, err := ls.CreateLobby("Alice")
		require.NoError(t, err)
		assert.False(t, seen[lobby.Code], "code %s handed out twice", lobby.Code)
		seen[lobby.Code] = true
	}
}

func TestJoinLobby(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)

	joined, err := ls.JoinLobby(lobby.Code, "Bob")
	require.NoError(t, err)
	require.Len(t, joined.Players, 2)
	assert.False(t, joined.Players[1].IsHost)
	assert.False(t, joined.Players[1].IsReady)
}

func TestJoinLobby_Errors(t *testing.T) {
	ls := newLobbyService(2)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)

	testCases := []struct {
		name       string
		code       string
		playerName string
		wantErr    error
	}{
		{name: "unknown code", code: "ZZZZZZ", playerName: "Bob", wantErr: ErrLobbyNotFound},
		{name: "duplicate name", code: lobby.Code, playerName: "Alice", wantErr: ErrNameTaken},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ls.JoinLobby(tc.code, tc.playerName)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Fill the lobby, then one more.
	_, err = ls.JoinLobby(lobby.Code, "Bob")
	require.NoError(t, err)
	_, err = ls.JoinLobby(lobby.Code, "Cara")
	assert.ErrorIs(t, err, ErrLobbyFull)
}

func TestToggleReady(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)
	bob := mustJoin(t, ls, lobby.Code, "Bob")

	_, err = ls.ToggleReady(lobby.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, lobby.GetPlayer(bob.ID).IsReady)

	_, err = ls.ToggleReady(lobby.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, lobby.GetPlayer(bob.ID).IsReady)

	_, err = ls.ToggleReady(lobby.ID, "nope")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = ls.ToggleReady("nope", bob.ID)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLeaveLobby_HostHandoff(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)
	bob := mustJoin(t, ls, lobby.Code, "Bob")
	mustJoin(t, ls, lobby.Code, "Cara")

	remaining, err := ls.LeaveLobby(lobby.ID, lobby.Players[0].ID)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, bob.ID, remaining.Players[0].ID)
	assert.True(t, remaining.Players[0].IsHost)
}

func TestLeaveLobby_LastPlayerDeletesLobby(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)
	code := lobby.Code

	remaining, err := ls.LeaveLobby(lobby.ID, lobby.Players[0].ID)
	require.NoError(t, err)
	assert.Nil(t, remaining)

	_, err = ls.GetLobby(lobby.ID)
	assert.ErrorIs(t, err, ErrLobbyNotFound)

	// The join code is released with the lobby.
	_, err = ls.JoinLobby(code, "Bob")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLeaveLobby_Errors(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)

	_, err = ls.LeaveLobby("nope", lobby.Players[0].ID)
	assert.ErrorIs(t, err, ErrLobbyNotFound)

	_, err = ls.LeaveLobby(lobby.ID, "nope")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Len(t, lobby.Players, 1)
}

func TestBeginRound(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)
	bob := mustJoin(t, ls, lobby.Code, "Bob")

	_, _, err = ls.BeginRound(lobby.ID)
	assert.ErrorIs(t, err, ErrNotAllReady)
	assert.Equal(t, models.StatusWaiting, lobby.Status)

	_, err = ls.ToggleReady(lobby.ID, bob.ID)
	require.NoError(t, err)

	got, players, err := ls.BeginRound(lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, lobby.ID, got.ID)
	assert.Len(t, players, 2)
	assert.Equal(t, models.StatusStarting, lobby.Status)
}

func TestBeginRound_NotEnoughPlayers(t *testing.T) {
	ls := newLobbyService(8)
	lobby, err := ls.CreateLobby("Alice")
	require.NoError(t, err)

	_, _, err = ls.BeginRound(lobby.ID)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func mustJoin(t *testing.T, ls *LobbyService, code, name string) *models.Player {
	t.Helper()
	lobby, err := ls.JoinLobby(code, name)
	require.NoError(t, err)
	player := lobby.Players[len(lobby.Players)-1]
	require.Equal(t, name, player.Name)
	return player
}
