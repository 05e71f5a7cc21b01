package main

import (
	"os"

	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/bootstrap"
	"github.com/yigit/isluportal/internal/config"
	"github.com/yigit/isluportal/internal/pkg/logger"
)

func main() {
	logger.Configure(logger.Config{Level: logger.WarnLevel, Pretty: true, Output: os.Stderr})

	cfg, err := config.LoadToolConfig(config.GetEnv("CONFIG_PATH", bootstrap.DefaultConfigPath))
	errAndDie(err)
	logger.Configure(logger.Config{Level: logger.ParseLevel(cfg.Logging.Level), Pretty: true, Output: os.Stderr})

	repos := bootstrap.NewRepositories(cfg)
	cmd := commandLine{
		svc: services.NewServices(repos, nil, nil, bootstrap.ServiceOptions(cfg), logger.Component("portalctl")),
		out: os.Stdout,
	}
	if err := cmd.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error().Err(err).Msg("portalctl failed")
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal().Err(err).Msg("portalctl could not start")
	}
}
