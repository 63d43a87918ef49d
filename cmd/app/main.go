package main

import (
	"wanderwise/config"
	"wanderwise/di"
	"wanderwise/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
