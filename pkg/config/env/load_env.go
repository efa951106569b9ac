package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// PathVar names the variable that overrides the .env location.
const PathVar = "TRIALSCORE_ENV_PATH"

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing default file is skipped; a missing file named by PathVar is an error.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv(PathVar)
	if !explicit || envPath == "" {
		slog.Debug("TRIALSCORE_ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	}
	return err
}
