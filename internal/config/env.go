package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/vango-dev/refstore/internal/errors"
)

// DefaultEnvFiles are the dotenv files LoadEnvFiles reads when given none.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads each existing dotenv file into the process
// environment and returns the files it loaded. Variables already set in the
// environment are not overwritten. Missing files are skipped.
func LoadEnvFiles(names ...string) ([]string, error) {
	if len(names) == 0 {
		names = DefaultEnvFiles
	}

	var loaded []string
	for _, name := range names {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, errors.New("E120").
				WithDetail("cannot load " + name).
				Wrap(err)
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}
