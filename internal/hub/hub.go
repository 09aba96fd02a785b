package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/MuIScX/Insider-o/internal/models"
)

// Hub tracks the websocket clients of every live lobby so game state changes
// can be pushed alongside the polling endpoints.
type Hub struct {
	lobbies map[string]*LobbyHub
	mu      sync.RWMutex
}

type LobbyHub struct {
	lobbyID string
	clients map[string]*Client
	mu      sync.RWMutex
}

type Client struct {
	ID       string
	LobbyID  string
	PlayerID string
	Send     chan []byte
}

func NewHub() *Hub {
	return &Hub{
		lobbies: make(map[string]*LobbyHub),
	}
}

func (h *Hub) GetLobbyHub(lobbyID string) *LobbyHub {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lobbies[lobbyID]
}

func (h *Hub) CreateLobbyHub(lobbyID string) *LobbyHub {
	h.mu.Lock()
	defer h.mu.Unlock()

	lobbyHub := &LobbyHub{
		lobbyID: lobbyID,
		clients: make(map[string]*Client),
	}
	h.lobbies[lobbyID] = lobbyHub
	return lobbyHub
}

func (h *Hub) RemoveLobbyHub(lobbyID string) {
	h.mu.Lock()
	lobbyHub := h.lobbies[lobbyID]
	delete(h.lobbies, lobbyID)
	h.mu.Unlock()

	if lobbyHub != nil {
		lobbyHub.closeAll()
	}
}

// Broadcast sends a game event to every client of the lobby. Unknown lobby
// ids are a no-op so callers don't have to care whether anyone is listening.
func (h *Hub) Broadcast(lobbyID, eventType string, data interface{}) {
	lobbyHub := h.GetLobbyHub(lobbyID)
	if lobbyHub == nil {
		return
	}

	event := models.GameEvent{
		Type:      eventType,
		LobbyID:   lobbyID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event for lobby %s: %v", eventType, lobbyID, err)
		return
	}

	lobbyHub.broadcast(payload)
}

func (lh *LobbyHub) Register(client *Client) {
	lh.mu.Lock()
	defer lh.mu.Unlock()

	if existing, ok := lh.clients[client.ID]; ok && existing.Send != client.Send {
		close(existing.Send)
	}
	lh.clients[client.ID] = client
}

func (lh *LobbyHub) Unregister(client *Client) {
	lh.mu.Lock()
	defer lh.mu.Unlock()

	if _, ok := lh.clients[client.ID]; ok {
		delete(lh.clients, client.ID)
		close(client.Send)
	}
}

func (lh *LobbyHub) ClientCount() int {
	lh.mu.RLock()
	defer lh.mu.RUnlock()
	return len(lh.clients)
}

func (lh *LobbyHub) broadcast(payload []byte) {
	lh.mu.Lock()
	defer lh.mu.Unlock()

	for id, client := range lh.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer, drop the connection rather than block the game.
			log.Printf("Client %s send buffer full, dropping from lobby %s", id, lh.lobbyID)
			close(client.Send)
			delete(lh.clients, id)
		}
	}
}

func (lh *LobbyHub) closeAll() {
	lh.mu.Lock()
	defer lh.mu.Unlock()

	for id, client := range lh.clients {
		close(client.Send)
		delete(lh.clients, id)
	}
}
