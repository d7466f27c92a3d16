package main

import (
	"os"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/logger"
	"github.com/Taha-Code-Hup/OnoTime/internal/server"
)

// @title OnoTime API
// @version 1.0
// @description Academic records service: students, courses, lecturers, study files and view counts

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup failures are logged by the bootstrap functions as well
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
