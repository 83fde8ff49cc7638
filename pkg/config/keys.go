package config

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	DotenvPathKey     = "ACTIVITIES_DOTENV_PATH"
	APIURLKey         = "ACTIVITIES_API_URL"
	HTTPTimeoutKey    = "ACTIVITIES_HTTP_TIMEOUT"
	LogLevelKey       = "ACTIVITIES_LOG_LEVEL"
	WebAddrKey        = "ACTIVITIES_WEB_ADDR"
	AdminAddrKey      = "ACTIVITIES_ADMIN_ADDR"
	SSHAddrKey        = "ACTIVITIES_SSH_ADDR"
	SSHHostKeyPathKey = "ACTIVITIES_SSH_HOST_KEY_PATH"
)

const (
	DefaultDotenvPath     = "~/.activities.env"
	DefaultAPIURL         = "http://localhost:8000"
	DefaultHTTPTimeout    = 10
	DefaultLogLevel       = "info"
	DefaultWebAddr        = ":8080"
	DefaultAdminAddr      = "localhost:8081"
	DefaultSSHAddr        = ":2222"
	DefaultSSHHostKeyPath = ".ssh/activities_ed25519"
)

// DotenvPath is the env file to load: ACTIVITIES_DOTENV_PATH when set,
// otherwise ~/.activities.env. A leading ~ is expanded.
func DotenvPath() (string, error) {
	path := os.Getenv(DotenvPathKey)
	if path == "" {
		path = DefaultDotenvPath
	}

	return homedir.Expand(path)
}

// HTTPTimeout reads ACTIVITIES_HTTP_TIMEOUT (seconds) from c.
func HTTPTimeout(c Configer) time.Duration {
	seconds := c.GetIntKeyWithDefault(HTTPTimeoutKey, DefaultHTTPTimeout)
	if seconds <= 0 {
		seconds = DefaultHTTPTimeout
	}

	return time.Duration(seconds) * time.Second
}
