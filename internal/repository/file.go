package repository

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// FileWordRepository draws words from a flat file, one word per line. The
// file is re-read on every draw so the list can be edited while the server
// is running.
type FileWordRepository struct {
	path string
}

func NewFileWordRepository(path string) *FileWordRepository {
	return &FileWordRepository{path: path}
}

func (r *FileWordRepository) RandomWord() (string, error) {
	words, err := r.readAll()
	if err != nil {
		return "", err
	}
	return words[rand.Intn(len(words))], nil
}

func (r *FileWordRepository) readAll() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	words := splitWords(string(data))
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// splitWords breaks file content into lines, dropping blank ones.
func splitWords(content string) []string {
	var words []string
	for _, line := range strings.Split(content, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
