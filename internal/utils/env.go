package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/paysponge/spongewallet-go/internal/logger"
)

// LoadEnvironment reads SPONGE_* settings from .env files in the working
// directory and next to the executable. Variables already set win.
func LoadEnvironment() []string {
	var loaded []string

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file in current directory: %v", err)
	} else {
		loaded = append(loaded, ".env")
	}

	execPath, err := os.Executable()
	if err != nil {
		logger.Debug("Could not determine executable path: %v", err)
		return loaded
	}

	envPath := filepath.Join(filepath.Dir(execPath), ".env")
	if err := godotenv.Load(envPath); err != nil {
		logger.Debug("No .env file in app directory (%s): %v", filepath.Dir(execPath), err)
	} else {
		loaded = append(loaded, envPath)
	}
	return loaded
}
