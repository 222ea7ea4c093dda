package config

import (
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// loadEnvFile loads the first existing dotenv file from paths and returns its
// name. Variables already present in the process environment are kept.
func loadEnvFile(paths []string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", errors.WrapError(err, errors.CategoryConfig, "load env file").
				WithContext("path", p).
				Build()
		}
		return p, nil
	}
	return "", nil
}
