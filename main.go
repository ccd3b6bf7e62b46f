package main

import (
	"appointment-sync/core/logger"
	"appointment-sync/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
