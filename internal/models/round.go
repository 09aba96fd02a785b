package models

import "time"

type Role string

const (
	RoleMaster  Role = "master"
	RoleInsider Role = "insider"
	RoleCommon  Role = "common"
)

// RolePlayer is a lobby player tagged with a game role for one round.
type RolePlayer struct {
	Player
	Role Role `json:"role"`
}

// Round is one play-through of the game for a lobby. It is created when the
// host starts the game and kept around after it ends for the results screen.
type Round struct {
	Word         string        `json:"word"`
	Players      []*RolePlayer `json:"players"`
	Status       Status        `json:"status"`
	StartTime    time.Time     `json:"startTime"`
	WordGuessed  bool          `json:"wordGuessed"`
	EndTime      *time.Time    `json:"endTime,omitempty"`
	Winner       Role          `json:"winner,omitempty"`
	GameDuration time.Duration `json:"gameDuration"`
}

func (r *Round) GetPlayer(playerID string) *RolePlayer {
	for _, player := range r.Players {
		if player.ID == playerID {
			return player
		}
	}
	return nil
}

func (r *Round) Insider() *RolePlayer {
	for _, player := range r.Players {
		if player.Role == RoleInsider {
			return player
		}
	}
	return nil
}

// TimeLeft returns the remaining play time at the given instant, floored at
// zero once the countdown has run out.
func (r *Round) TimeLeft(now time.Time) time.Duration {
	left := r.GameDuration - now.Sub(r.StartTime)
	if left < 0 {
		return 0
	}
	return left
}

// End moves the round to its terminal state. Calling it again overwrites the
// winner, which is how the vote resolution gets the final say.
func (r *Round) End(winner Role, now time.Time) {
	r.Status = StatusEnded
	r.EndTime = &now
	r.Winner = winner
}

type Vote struct {
	VoterID    string `json:"voterId"`
	VotedForID string `json:"votedForId"`
}

type GameEvent struct {
	Type      string      `json:"type"`
	LobbyID   string      `json:"lobby_id"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
