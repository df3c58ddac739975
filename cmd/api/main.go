package main

import (
	"log"

	"venuebook/internal/app"
	"venuebook/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
