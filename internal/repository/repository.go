package repository

import "errors"

// ErrNoWords is returned when a backend has no usable entries to draw from.
var ErrNoWords = errors.New("no words available")

// WordRepository supplies secret words for new rounds.
type WordRepository interface {
	RandomWord() (string, error)
}
