package main

import (
	"context"
	"os"

	"github.com/yigit/launchpad/internal/pkg/logger"
	"github.com/yigit/launchpad/internal/server"
)

// @title LaunchPad API
// @version 1.0
// @description API for the LaunchPad campus startup platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@launchpad.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Identity provider access token, "Bearer <token>"

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Setup failures are logged in detail by the bootstrap functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
