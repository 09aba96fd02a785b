package services

import "errors"

var (
	ErrHostNameRequired = errors.New("host name is required")
	ErrLobbyNotFound    = errors.New("lobby not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrLobbyFull        = errors.New("lobby is full")
	ErrNameTaken        = errors.New("player name already exists")
	ErrNotAllReady      = errors.New("not all players are ready")
	ErrNotEnoughPlayers = errors.New("need at least two players to start")
	ErrNotMaster        = errors.New("only the master can mark the word as guessed")
	ErrAlreadyVoted     = errors.New("you have already voted")
)
