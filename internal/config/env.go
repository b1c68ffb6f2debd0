package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

const DefaultEnvFile = ".env"

// Environment holds the process settings read from the environment and the optional .env file.
type Environment struct {
	DataDir       string `validate:"required"`
	LogDir        string
	PolygonAPIKey string
}

// LoadEnvironment loads the env files that exist, then reads DATA_DIR, LOG_DIR and POLYGON_API_KEY.
// Variables already set in the process win over the files.
func LoadEnvironment(envFiles ...string) (Environment, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return Environment{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load %s", file)
		}
	}

	env := Environment{
		DataDir:       os.Getenv("DATA_DIR"),
		LogDir:        os.Getenv("LOG_DIR"),
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
	}

	if err := validator.New().Struct(env); err != nil {
		return Environment{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "DATA_DIR environment variable not set", err)
	}

	return env, nil
}
