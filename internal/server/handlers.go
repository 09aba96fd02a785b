package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/MuIScX/Insider-o/internal/models"
	"github.com/MuIScX/Insider-o/internal/services"

	"github.com/gin-gonic/gin"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrLobbyNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotMaster):
		return http.StatusForbidden
	case errors.Is(err, services.ErrLobbyFull),
		errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrNotAllReady),
		errors.Is(err, services.ErrAlreadyVoted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func (s *Server) createLobby(c *gin.Context) {
	var req struct {
		HostName string `json:"hostName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lobby, err := s.lobbyService.CreateLobby(req.HostName)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lobby)
}

func (s *Server) joinLobby(c *gin.Context) {
	var req struct {
		Code       string `json:"code" binding:"required"`
		PlayerName string `json:"playerName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lobby, err := s.lobbyService.JoinLobby(req.Code, req.PlayerName)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lobby)
}

func (s *Server) getLobby(c *gin.Context) {
	lobby, err := s.lobbyService.GetLobby(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lobby)
}

func (s *Server) toggleReady(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lobby, err := s.lobbyService.ToggleReady(c.Param("id"), req.PlayerID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lobby)
}

func (s *Server) leaveLobby(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lobby, err := s.lobbyService.LeaveLobby(c.Param("id"), req.PlayerID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	// A nil lobby means the last player left and the lobby is gone.
	c.JSON(http.StatusOK, lobby)
}

func (s *Server) startGame(c *gin.Context) {
	var req struct {
		GameDuration int64 `json:"gameDuration"` // milliseconds, optional
	}
	// An empty body means "use the default duration".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration := time.Duration(req.GameDuration) * time.Millisecond
	if duration <= 0 {
		duration = s.config.GameDuration
	}
	lobby, round, err := s.gameService.StartRound(c.Param("id"), duration)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lobby":     lobby,
		"gameState": round,
	})
}

func (s *Server) getGame(c *gin.Context) {
	round, err := s.gameService.GetRound(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	timeLeft := round.TimeLeft(time.Now())
	if round.Status == models.StatusEnded {
		timeLeft = 0
	}
	c.JSON(http.StatusOK, gin.H{
		"gameState": round,
		"timeLeft":  timeLeft.Milliseconds(),
	})
}

func (s *Server) markGuessed(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := s.gameService.MarkGuessed(c.Param("id"), req.PlayerID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gameState":      round,
		"timeLeft":       0,
		"shouldRedirect": true,
	})
}

func (s *Server) checkTime(c *gin.Context) {
	check, err := s.gameService.CheckTime(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := gin.H{
		"timeLeft":       check.TimeLeft.Milliseconds(),
		"shouldRedirect": check.ShouldRedirect,
	}
	if check.Round != nil {
		resp["gameState"] = check.Round
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) submitVote(c *gin.Context) {
	var req struct {
		VoterID    string `json:"voterId" binding:"required"`
		VotedForID string `json:"votedForId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tally, err := s.gameService.SubmitVote(c.Param("id"), req.VoterID, req.VotedForID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gameState":       tally.Round,
		"votes":           tally.Votes,
		"voteCounts":      tally.VoteCounts,
		"allPlayersVoted": tally.AllVoted,
	})
}

func (s *Server) listVotes(c *gin.Context) {
	votes, voteCounts := s.gameService.Votes(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"votes":      votes,
		"voteCounts": voteCounts,
	})
}
