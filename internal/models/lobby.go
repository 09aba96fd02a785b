package models

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusStarting Status = "starting"
	StatusPlaying  Status = "playing"
	StatusEnded    Status = "ended"
)

type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsHost  bool   `json:"isHost"`
	IsReady bool   `json:"isReady"`
}

type Lobby struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Players    []*Player `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewLobby creates a lobby with the host registered as its only player.
func NewLobby(code, hostName string, maxPlayers int) *Lobby {
	host := &Player{
		ID:      uuid.New().String(),
		Name:    hostName,
		IsHost:  true,
		IsReady: false,
	}
	return &Lobby{
		ID:         uuid.New().String(),
		Code:       code,
		Players:    []*Player{host},
		MaxPlayers: maxPlayers,
		Status:     StatusWaiting,
		CreatedAt:  time.Now(),
	}
}

func (l *Lobby) AddPlayer(name string) *Player {
	player := &Player{
		ID:      uuid.New().String(),
		Name:    name,
		IsHost:  false,
		IsReady: false,
	}
	l.Players = append(l.Players, player)
	return player
}

// RemovePlayer removes the player and hands the host flag to the earliest
// remaining joiner when the host leaves.
func (l *Lobby) RemovePlayer(playerID string) bool {
	for i, player := range l.Players {
		if player.ID == playerID {
			wasHost := player.IsHost
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			if wasHost && len(l.Players) > 0 {
				l.Players[0].IsHost = true
			}
			return true
		}
	}
	return false
}

func (l *Lobby) GetPlayer(playerID string) *Player {
	for _, player := range l.Players {
		if player.ID == playerID {
			return player
		}
	}
	return nil
}

func (l *Lobby) HasPlayerNamed(name string) bool {
	for _, player := range l.Players {
		if player.Name == name {
			return true
		}
	}
	return false
}

func (l *Lobby) IsFull() bool {
	return len(l.Players) >= l.MaxPlayers
}

// GuestsReady reports whether every non-host player is ready. The host's
// ready flag is cosmetic and never gates a start.
func (l *Lobby) GuestsReady() bool {
	for _, player := range l.Players {
		if !player.IsHost && !player.IsReady {
			return false
		}
	}
	return true
}
