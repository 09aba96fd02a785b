package repository

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

// PostgresWordRepository stores the word list in a Postgres table. The table
// is created at startup and seeded from the flat word file when empty, so a
// fresh database works out of the box.
type PostgresWordRepository struct {
	db *sql.DB
}

func NewPostgresWordRepository(databaseURL string) (*PostgresWordRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &PostgresWordRepository{db: db}, nil
}

func createTables(db *sql.DB) error {
	createWordsTable := `
	CREATE TABLE IF NOT EXISTS words (
		word VARCHAR(255) PRIMARY KEY,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	_, err := db.Exec(createWordsTable)
	return err
}

func (r *PostgresWordRepository) RandomWord() (string, error) {
	var word string
	err := r.db.QueryRow("SELECT word FROM words ORDER BY random() LIMIT 1").Scan(&word)
	if err == sql.ErrNoRows {
		return "", ErrNoWords
	}
	if err != nil {
		return "", err
	}
	return word, nil
}

// SeedFromFile copies the flat word file into the words table if the table
// is still empty. Existing rows win over the file.
func (r *PostgresWordRepository) SeedFromFile(path string) error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fileRepo := NewFileWordRepository(path)
	data, err := fileRepo.readAll()
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, word := range data {
		if _, err := tx.Exec("INSERT INTO words (word) VALUES ($1) ON CONFLICT DO NOTHING", word); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("Seeded %d words from %s", len(data), path)
	return nil
}

func (r *PostgresWordRepository) Close() error {
	return r.db.Close()
}
