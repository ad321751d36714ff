package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env (or the given files) into the process environment.
// Variables already set win; a missing file only logs a warning.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		if path := os.Getenv("ENV_FILE"); path != "" {
			files = []string{path}
		}
	}

	if err := godotenv.Load(files...); err != nil {
		Logger.Warn("No .env file loaded, using process environment:", err)
	}
}
