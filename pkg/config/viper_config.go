package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ViperConfig layers command line flags over the environment. A flag only
// wins when it was given on the command line; otherwise the environment
// (including anything loaded from the env file) is used, then the flag's
// default.
type ViperConfig struct {
	getters
	v *viper.Viper
}

func NewViperConfig() *ViperConfig {
	c := &ViperConfig{v: viper.New()}
	c.v.AutomaticEnv()
	c.getters = getters{getKey: c.GetKey}

	return c
}

// BindFlag makes flag a source for key.
func (c *ViperConfig) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Errorf("no flag for config key %s", key)
	}

	return errors.Wrapf(c.v.BindPFlag(key, flag), "binding flag --%s", flag.Name)
}

// LoadFromPath reads a config file (yaml, toml, json or env, by extension).
func (c *ViperConfig) LoadFromPath(path string) error {
	c.v.SetConfigFile(path)
	return c.Load()
}

func (c *ViperConfig) Load() error {
	if c.v.ConfigFileUsed() == "" {
		return nil
	}

	return errors.Wrap(c.v.ReadInConfig(), "reading config")
}

func (c *ViperConfig) GetKey(key string) string {
	return c.v.GetString(key)
}
