package services

import (
	"log"
	"math/rand"
	"sync"

	"github.com/MuIScX/Insider-o/internal/hub"
	"github.com/MuIScX/Insider-o/internal/models"
)

const (
	codeLength = 6
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// LobbyService tracks every live lobby by id and by human-entered join code.
// All mutations go through the service's lock so join, ready, leave and the
// start handshake never interleave.
type LobbyService struct {
	hub        *hub.Hub
	mu         sync.RWMutex
	lobbies    map[string]*models.Lobby
	codes      map[string]string // join code -> lobby id
	maxPlayers int
}

func NewLobbyService(gameHub *hub.Hub, maxPlayers int) *LobbyService {
	return &LobbyService{
		hub:        gameHub,
		lobbies:    make(map[string]*models.Lobby),
		codes:      make(map[string]string),
		maxPlayers: maxPlayers,
	}
}

func (ls *LobbyService) CreateLobby(hostName string) (*models.Lobby, error) {
	if hostName == "" {
		return nil, ErrHostNameRequired
	}

	ls.mu.Lock()
	code := ls.generateCode()
	lobby := models.NewLobby(code, hostName, ls.maxPlayers)
	ls.lobbies[lobby.ID] = lobby
	ls.codes[code] = lobby.ID
	ls.mu.Unlock()

	ls.hub.CreateLobbyHub(lobby.ID)
	log.Printf("Created lobby %s (code %s) for host %s", lobby.ID, code, hostName)
	return lobby, nil
}

func (ls *LobbyService) JoinLobby(code, playerName string) (*models.Lobby, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	lobbyID, ok := ls.codes[code]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	lobby, ok := ls.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}

	if lobby.IsFull() {
		return nil, ErrLobbyFull
	}
	if lobby.HasPlayerNamed(playerName) {
		return nil, ErrNameTaken
	}

	player := lobby.AddPlayer(playerName)
	ls.hub.Broadcast(lobby.ID, "player_joined", map[string]interface{}{
		"player": player,
		"lobby":  lobby,
	})
	return lobby, nil
}

func (ls *LobbyService) GetLobby(lobbyID string) (*models.Lobby, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	lobby, ok := ls.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return lobby, nil
}

func (ls *LobbyService) ToggleReady(lobbyID, playerID string) (*models.Lobby, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	lobby, ok := ls.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	player := lobby.GetPlayer(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	player.IsReady = !player.IsReady
	ls.hub.Broadcast(lobbyID, "player_ready", map[string]interface{}{
		"player_id": playerID,
		"is_ready":  player.IsReady,
	})
	return lobby, nil
}

// LeaveLobby removes the player. When the host leaves, the earliest remaining
// joiner inherits the host flag; when the last player leaves, the lobby and
// its join code are dropped and (nil, nil) is returned.
func (ls *LobbyService) LeaveLobby(lobbyID, playerID string) (*models.Lobby, error) {
	ls.mu.Lock()
	lobby, ok := ls.lobbies[lobbyID]
	if !ok {
		ls.mu.Unlock()
		return nil, ErrLobbyNotFound
	}
	if !lobby.RemovePlayer(playerID) {
		ls.mu.Unlock()
		return nil, ErrPlayerNotFound
	}

	empty := len(lobby.Players) == 0
	if empty {
		delete(ls.lobbies, lobbyID)
		delete(ls.codes, lobby.Code)
	}
	ls.mu.Unlock()

	if empty {
		ls.hub.RemoveLobbyHub(lobbyID)
		log.Printf("Lobby %s is empty, removed", lobbyID)
		return nil, nil
	}

	ls.hub.Broadcast(lobbyID, "player_left", map[string]interface{}{
		"player_id": playerID,
		"lobby":     lobby,
	})
	return lobby, nil
}

// BeginRound validates the start preconditions, flips the lobby to starting
// and hands back a snapshot of its players for role assignment. Host
// readiness is never checked.
func (ls *LobbyService) BeginRound(lobbyID string) (*models.Lobby, []*models.Player, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	lobby, ok := ls.lobbies[lobbyID]
	if !ok {
		return nil, nil, ErrLobbyNotFound
	}
	if len(lobby.Players) < 2 {
		return nil, nil, ErrNotEnoughPlayers
	}
	if !lobby.GuestsReady() {
		return nil, nil, ErrNotAllReady
	}

	lobby.Status = models.StatusStarting
	players := make([]*models.Player, len(lobby.Players))
	copy(players, lobby.Players)
	return lobby, players, nil
}

// SetStatus propagates a round state change onto the owning lobby. Missing
// lobbies are ignored: a round outlives its lobby once everyone has left.
func (ls *LobbyService) SetStatus(lobbyID string, status models.Status) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if lobby, ok := ls.lobbies[lobbyID]; ok {
		lobby.Status = status
	}
}

// generateCode picks an unused 6-letter join code. Caller must hold the lock.
func (ls *LobbyService) generateCode() string {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			code[i] = codeChars[rand.Intn(len(codeChars))]
		}
		if _, taken := ls.codes[string(code)]; !taken {
			return string(code)
		}
	}
}
