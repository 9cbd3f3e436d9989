package main

import (
	"os"
	"trainhub-api/core/logger"
	"trainhub-api/core/server"
)

// @title TrainHub API
// @version 1.0
// @description Backend for multi-center training associations: scheduling, training plans, attendance and reports.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		logger.Sync()
		os.Exit(1)
	}
}
