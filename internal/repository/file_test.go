package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileWordRepository_RandomWord(t *testing.T) {
	repo := NewFileWordRepository(writeWordFile(t, "ALPHA\n\n  \nBETA \n"))

	// Blank lines and padding are dropped.
	for i := 0; i < 20; i++ {
		word, err := repo.RandomWord()
		require.NoError(t, err)
		assert.Contains(t, []string{"ALPHA", "BETA"}, word)
	}
}

func TestFileWordRepository_MissingFile(t *testing.T) {
	repo := NewFileWordRepository(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := repo.RandomWord()
	assert.Error(t, err)
}

func TestFileWordRepository_EmptyFile(t *testing.T) {
	repo := NewFileWordRepository(writeWordFile(t, "\n \n"))

	_, err := repo.RandomWord()
	assert.ErrorIs(t, err, ErrNoWords)
}
