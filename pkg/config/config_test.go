package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfig_Getters(t *testing.T) {
	c := NewMapConfig(map[string]string{
		APIURLKey:      "http://backend:9000",
		HTTPTimeoutKey: "3",
		"NOT_AN_INT":   "three",
	})

	assert.Equal(t, "http://backend:9000", c.GetKey(APIURLKey))
	assert.Equal(t, "", c.GetKey("MISSING"))
	assert.Equal(t, "fallback", c.GetKeyWithDefault("MISSING", "fallback"))
	assert.Equal(t, 3, c.GetIntKey(HTTPTimeoutKey))
	assert.Equal(t, 0, c.GetIntKey("NOT_AN_INT"))
	assert.Equal(t, 7, c.GetIntKeyWithDefault("NOT_AN_INT", 7))
	assert.Equal(t, 3*time.Second, HTTPTimeout(c))
	assert.Error(t, c.LoadFromPath("anything"))
}

func TestHTTPTimeout_Defaults(t *testing.T) {
	assert.Equal(t, DefaultHTTPTimeout*time.Second, HTTPTimeout(NewMapConfig(nil)))
	assert.Equal(t, DefaultHTTPTimeout*time.Second, HTTPTimeout(NewMapConfig(map[string]string{HTTPTimeoutKey: "-1"})))
}

func TestDotenvConfig_LoadIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activities.env")
	require.NoError(t, os.WriteFile(path, []byte("ACTIVITIES_TEST_DOTENV_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ACTIVITIES_TEST_DOTENV_KEY") })

	c := NewDotenvConfig(path)
	require.NoError(t, c.LoadIfExists())
	assert.Equal(t, "from-file", c.GetKey("ACTIVITIES_TEST_DOTENV_KEY"))

	missing := NewDotenvConfig(filepath.Join(dir, "missing.env"))
	assert.NoError(t, missing.LoadIfExists())
	assert.Error(t, missing.Load())
}

func TestDotenvConfig_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.env")
	require.NoError(t, os.WriteFile(path, []byte("ACTIVITIES_TEST_WIN_KEY=from-file\n"), 0o600))
	t.Setenv("ACTIVITIES_TEST_WIN_KEY", "from-env")

	c := NewDotenvConfig(path)
	require.NoError(t, c.Load())
	assert.Equal(t, "from-env", c.GetKey("ACTIVITIES_TEST_WIN_KEY"))
}

func TestViperConfig_FlagOverEnv(t *testing.T) {
	t.Setenv(APIURLKey, "http://from-env:8000")
	t.Setenv(LogLevelKey, "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", DefaultAPIURL, "")
	flags.String("log-level", DefaultLogLevel, "")
	flags.String("web-addr", DefaultWebAddr, "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://from-flag:8000"}))

	c := NewViperConfig()
	require.NoError(t, c.BindFlag(APIURLKey, flags.Lookup("api-url")))
	require.NoError(t, c.BindFlag(LogLevelKey, flags.Lookup("log-level")))
	require.NoError(t, c.BindFlag(WebAddrKey, flags.Lookup("web-addr")))
	assert.Error(t, c.BindFlag(SSHAddrKey, flags.Lookup("nope")))

	assert.Equal(t, "http://from-flag:8000", c.GetKey(APIURLKey), "a given flag wins")
	assert.Equal(t, "warn", c.GetKey(LogLevelKey), "env wins over a flag default")
	assert.Equal(t, DefaultWebAddr, c.GetKey(WebAddrKey), "flag default is the last resort")
	assert.NoError(t, c.Load())
}

func TestViperConfig_LoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ACTIVITIES_HTTP_TIMEOUT: 4\n"), 0o600))

	c := NewViperConfig()
	require.NoError(t, c.LoadFromPath(path))
	assert.Equal(t, 4*time.Second, HTTPTimeout(c))

	assert.Error(t, NewViperConfig().LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestDotenvPath(t *testing.T) {
	t.Setenv(DotenvPathKey, "/etc/activities.env")
	path, err := DotenvPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/activities.env", path)

	t.Setenv(DotenvPathKey, "")
	path, err = DotenvPath()
	require.NoError(t, err)
	assert.Equal(t, ".activities.env", filepath.Base(path))
	assert.NotContains(t, path, "~")
}
