// File: cmd/scpsync/main.go
package main

import (
	"log/slog"
	"os"

	"scpsync/internal/logger"

	// Explicitly import transport implementations to ensure their init() functions run and they register themselves
	_ "scpsync/pkg/transport/native"
	_ "scpsync/pkg/transport/scp"
)

func main() {
	level := new(slog.LevelVar)
	log := logger.NewLogger(os.Stderr, level)

	app, err := newApp(log, level)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	os.Exit(Execute(app))
}
