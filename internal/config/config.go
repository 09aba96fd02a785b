package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	WordsFile    string
	MaxLobbySize int
	GameDuration time.Duration
}

func Load() *Config {
	// A local .env is optional; real deployments set the environment.
	godotenv.Load()

	port := getEnv("PORT", "8080")
	databaseURL := getEnv("DATABASE_URL", "")
	wordsFile := getEnv("WORDS_FILE", "words.csv")
	maxLobbySize := getEnvAsInt("MAX_LOBBY_SIZE", 8)
	gameDuration := getEnvAsInt("GAME_DURATION_SECONDS", 300)

	return &Config{
		Port:         port,
		DatabaseURL:  databaseURL,
		WordsFile:    wordsFile,
		MaxLobbySize: maxLobbySize,
		GameDuration: time.Duration(gameDuration) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
