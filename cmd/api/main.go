package main

import (
	"os"

	"github.com/yigit/isluportal/internal/pkg/logger"
	"github.com/yigit/isluportal/internal/server"
)

// @title iSLU Student Portal API
// @version 1.0
// @description Student portal over the iSLU flat-file records: schedule, attendance, grades and statement of accounts

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Portal server could not start")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Portal server stopped with an error")
		os.Exit(1)
	}

	logger.Info().Msg("Portal server stopped")
}
