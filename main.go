package main

import (
	"log"

	"github.com/MuIScX/Insider-o/internal/config"
	"github.com/MuIScX/Insider-o/internal/server"
)

func main() {
	cfg := config.Load()
	srv := server.NewServer(cfg)
	log.Printf("Starting server on port %s", cfg.Port)
	if err := srv.Start(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
