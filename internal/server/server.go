package server

import (
	"log"
	"net/http"
	"time"

	"github.com/MuIScX/Insider-o/internal/config"
	"github.com/MuIScX/Insider-o/internal/hub"
	"github.com/MuIScX/Insider-o/internal/repository"
	"github.com/MuIScX/Insider-o/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Server struct {
	config       *config.Config
	hub          *hub.Hub
	lobbyService *services.LobbyService
	gameService  *services.GameService
	router       *gin.Engine
	upgrader     websocket.Upgrader
}

func NewServer(cfg *config.Config) *Server {
	gameHub := hub.NewHub()

	// Words come from Postgres when DATABASE_URL is set, otherwise straight
	// from the flat file.
	var words repository.WordRepository
	if cfg.DatabaseURL != "" {
		log.Printf("Using PostgreSQL word list")
		pgWords, err := repository.NewPostgresWordRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		if err := pgWords.SeedFromFile(cfg.WordsFile); err != nil {
			log.Printf("Warning: could not seed word table from %s: %v", cfg.WordsFile, err)
		}
		words = pgWords
	} else {
		log.Printf("Using word list file %s", cfg.WordsFile)
		words = repository.NewFileWordRepository(cfg.WordsFile)
	}

	lobbyService := services.NewLobbyService(gameHub, cfg.MaxLobbySize)
	gameService := services.NewGameService(lobbyService, words, gameHub)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-Requested-With"},
	}))

	server := &Server{
		config:       cfg,
		hub:          gameHub,
		lobbyService: lobbyService,
		gameService:  gameService,
		router:       router,
		upgrader:     upgrader,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/lobbies", s.createLobby)
		api.POST("/lobbies/join", s.joinLobby)
		api.GET("/lobbies/:id", s.getLobby)
		api.POST("/lobbies/:id/ready", s.toggleReady)
		api.POST("/lobbies/:id/leave", s.leaveLobby)
		api.POST("/lobbies/:id/start", s.startGame)

		api.GET("/games/:id", s.getGame)
		api.POST("/games/:id/guess", s.markGuessed)
		api.GET("/games/:id/time", s.checkTime)
		api.POST("/games/:id/vote", s.submitVote)
		api.GET("/games/:id/votes", s.listVotes)
	}

	s.router.GET("/ws", s.handleWebSocket)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	lobbyID := c.Query("lobby_id")
	playerID := c.Query("player_id")

	lobbyHub := s.hub.GetLobbyHub(lobbyID)
	if lobbyHub == nil {
		c.JSON(404, gin.H{"error": "lobby not found"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &hub.Client{
		ID:       uuid.New().String(),
		LobbyID:  lobbyID,
		PlayerID: playerID,
		Send:     make(chan []byte, 256),
	}
	lobbyHub.Register(client)

	go s.readPump(conn, lobbyHub, client)
	go s.writePump(conn, client)
}

// readPump drains the connection until it drops. The event stream is one-way;
// incoming frames are discarded.
func (s *Server) readPump(conn *websocket.Conn, lobbyHub *hub.LobbyHub, client *hub.Client) {
	defer func() {
		lobbyHub.Unregister(client)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) Start() error {
	return s.router.Run(":" + s.config.Port)
}
