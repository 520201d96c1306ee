package main

import (
	"procasa_backend/internal/app"
	"procasa_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("application failed", "error", err)
	}
}
