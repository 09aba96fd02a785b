package services

import (
	"log"
	"sync"
	"time"

	"github.com/MuIScX/Insider-o/internal/hub"
	"github.com/MuIScX/Insider-o/internal/models"
	"github.com/MuIScX/Insider-o/internal/repository"
)

// FallbackWord is handed out when the word repository fails, so a round can
// always start even with a broken word list.
const FallbackWord = "DEFAULT"

// DefaultGameDuration applies when the host does not pick a duration.
const DefaultGameDuration = 5 * time.Minute

// GameService owns the per-lobby round state: phase transitions, the
// countdown, guess resolution and the vote ledger. Rounds and votes are keyed
// by lobby id and survive the lobby itself so results stay readable.
type GameService struct {
	lobbies *LobbyService
	words   repository.WordRepository
	hub     *hub.Hub

	mu     sync.Mutex
	rounds map[string]*models.Round
	votes  map[string][]models.Vote
}

// TimeCheck is the answer to a clock poll. Round is populated once the
// countdown has reached zero.
type TimeCheck struct {
	TimeLeft       time.Duration
	ShouldRedirect bool
	Round          *models.Round
}

// VoteTally is the state of the ledger after a vote was accepted.
type VoteTally struct {
	Round      *models.Round
	Votes      []models.Vote
	VoteCounts map[string]int
	AllVoted   bool
}

func NewGameService(lobbies *LobbyService, words repository.WordRepository, gameHub *hub.Hub) *GameService {
	return &GameService{
		lobbies: lobbies,
		words:   words,
		hub:     gameHub,
		rounds:  make(map[string]*models.Round),
		votes:   make(map[string][]models.Vote),
	}
}

// StartRound draws a word, assigns roles over the lobby's players and begins
// the countdown. Starting again replaces any previous round for the lobby.
func (gs *GameService) StartRound(lobbyID string, duration time.Duration) (*models.Lobby, *models.Round, error) {
	lobby, players, err := gs.lobbies.BeginRound(lobbyID)
	if err != nil {
		return nil, nil, err
	}

	if duration <= 0 {
		duration = DefaultGameDuration
	}

	round := &models.Round{
		Word:         gs.drawWord(),
		Players:      assignRoles(players),
		Status:       models.StatusPlaying,
		StartTime:    time.Now(),
		WordGuessed:  false,
		GameDuration: duration,
	}

	gs.mu.Lock()
	// TODO: votes from an earlier round of the same lobby are still in the
	// ledger; clearing them here would change observed tallies on a restart.
	gs.rounds[lobbyID] = round
	gs.mu.Unlock()

	gs.hub.Broadcast(lobbyID, "game_started", map[string]interface{}{
		"lobby": lobby,
	})
	log.Printf("Round started for lobby %s with %d players, duration %s", lobbyID, len(round.Players), duration)
	return lobby, round, nil
}

func (gs *GameService) GetRound(lobbyID string) (*models.Round, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	round, ok := gs.rounds[lobbyID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return round, nil
}

// MarkGuessed records that the master declared the word guessed, ending the
// round in the master's favor.
func (gs *GameService) MarkGuessed(lobbyID, playerID string) (*models.Round, error) {
	gs.mu.Lock()
	round, ok := gs.rounds[lobbyID]
	if !ok {
		gs.mu.Unlock()
		return nil, ErrGameNotFound
	}
	player := round.GetPlayer(playerID)
	if player == nil {
		gs.mu.Unlock()
		return nil, ErrPlayerNotFound
	}
	if player.Role != models.RoleMaster {
		gs.mu.Unlock()
		return nil, ErrNotMaster
	}

	round.WordGuessed = true
	round.End(models.RoleMaster, time.Now())
	gs.mu.Unlock()

	gs.lobbies.SetStatus(lobbyID, models.StatusEnded)
	gs.hub.Broadcast(lobbyID, "word_guessed", map[string]interface{}{
		"game": round,
	})
	return round, nil
}

// CheckTime reports the remaining play time. The timeout transition is lazy:
// the first poll after expiry ends the round in the insider's favor and
// back-fills a self-vote for every player who has not voted yet, so the vote
// tally is already complete when clients move on.
func (gs *GameService) CheckTime(lobbyID string) (TimeCheck, error) {
	gs.mu.Lock()
	round, ok := gs.rounds[lobbyID]
	if !ok {
		gs.mu.Unlock()
		return TimeCheck{}, ErrGameNotFound
	}

	now := time.Now()
	left := round.TimeLeft(now)
	expired := left == 0 && !round.WordGuessed

	if expired {
		round.End(models.RoleInsider, now)
		for _, player := range round.Players {
			if !gs.hasVoted(lobbyID, player.ID) {
				gs.votes[lobbyID] = append(gs.votes[lobbyID], models.Vote{
					VoterID:    player.ID,
					VotedForID: player.ID,
				})
			}
		}
	}

	check := TimeCheck{
		TimeLeft:       left,
		ShouldRedirect: expired,
	}
	if left == 0 {
		check.Round = round
	}
	gs.mu.Unlock()

	if expired {
		gs.lobbies.SetStatus(lobbyID, models.StatusEnded)
		gs.hub.Broadcast(lobbyID, "game_ended", map[string]interface{}{
			"game": round,
		})
	}
	return check, nil
}

// SubmitVote appends a vote to the round's ledger. The first vote per voter
// wins; later submissions are rejected. Once every player has voted the
// round outcome is resolved.
func (gs *GameService) SubmitVote(lobbyID, voterID, votedForID string) (VoteTally, error) {
	gs.mu.Lock()
	round, ok := gs.rounds[lobbyID]
	if !ok {
		gs.mu.Unlock()
		return VoteTally{}, ErrGameNotFound
	}
	if gs.hasVoted(lobbyID, voterID) {
		gs.mu.Unlock()
		return VoteTally{}, ErrAlreadyVoted
	}

	gs.votes[lobbyID] = append(gs.votes[lobbyID], models.Vote{
		VoterID:    voterID,
		VotedForID: votedForID,
	})

	tally := VoteTally{
		Round:      round,
		Votes:      append([]models.Vote(nil), gs.votes[lobbyID]...),
		VoteCounts: countVotes(gs.votes[lobbyID]),
		AllVoted:   len(gs.votes[lobbyID]) == len(round.Players),
	}

	if tally.AllVoted {
		round.End(resolveWinner(tally.VoteCounts, round.Insider()), time.Now())
	}
	gs.mu.Unlock()

	if tally.AllVoted {
		gs.lobbies.SetStatus(lobbyID, models.StatusEnded)
		gs.hub.Broadcast(lobbyID, "game_ended", map[string]interface{}{
			"game":       round,
			"voteCounts": tally.VoteCounts,
		})
	} else {
		gs.hub.Broadcast(lobbyID, "vote_cast", map[string]interface{}{
			"voteCounts": tally.VoteCounts,
		})
	}
	return tally, nil
}

// Votes returns the ledger and tally for a lobby. A lobby that never voted
// yields an empty ledger rather than an error.
func (gs *GameService) Votes(lobbyID string) ([]models.Vote, map[string]int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	votes := append([]models.Vote(nil), gs.votes[lobbyID]...)
	return votes, countVotes(votes)
}

func (gs *GameService) drawWord() string {
	word, err := gs.words.RandomWord()
	if err != nil {
		log.Printf("Error drawing word, falling back to %q: %v", FallbackWord, err)
		return FallbackWord
	}
	return word
}

// hasVoted reports whether the voter already has a ledger entry. Caller must
// hold the lock.
func (gs *GameService) hasVoted(lobbyID, voterID string) bool {
	for _, vote := range gs.votes[lobbyID] {
		if vote.VoterID == voterID {
			return true
		}
	}
	return false
}

func countVotes(votes []models.Vote) map[string]int {
	counts := make(map[string]int)
	for _, vote := range votes {
		counts[vote.VotedForID]++
	}
	return counts
}

// resolveWinner applies the single-culprit rule: the master's side wins only
// when exactly one player holds the top vote count and that player is the
// insider. Any tie, or a wrong top candidate, hands the round to the insider.
func resolveWinner(voteCounts map[string]int, insider *models.RolePlayer) models.Role {
	maxVotes := 0
	for _, count := range voteCounts {
		if count > maxVotes {
			maxVotes = count
		}
	}

	var topCandidates []string
	for playerID, count := range voteCounts {
		if count == maxVotes {
			topCandidates = append(topCandidates, playerID)
		}
	}

	if insider != nil && len(topCandidates) == 1 && topCandidates[0] == insider.ID {
		return models.RoleMaster
	}
	return models.RoleInsider
}
