package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the environment after loading an env file
// into it. Variables already set in the environment win over the file.
type DotenvConfig struct {
	getters
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{getters: getters{getKey: os.Getenv}, DotenvPath: path}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	return gotenv.Load(c.DotenvPath)
}

// LoadIfExists is Load, except that a missing file is not an error.
func (c *DotenvConfig) LoadIfExists() error {
	if _, err := os.Stat(c.DotenvPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return c.Load()
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}
