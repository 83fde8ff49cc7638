package web

import (
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/clog"
	"github.com/pkg/errors"
)

// LogController changes the server's log level and output at runtime.
type LogController struct {
	mu              sync.Mutex
	CurrentLogLevel string `json:"current_log_level"`
	CurrentLogFile  string `json:"current_log_file"`
	currentHandler  *clog.Handler
}

// NewLogController manages handler, which must be the installed apex/log
// handler. A nil handler installs a new one writing to stdout.
func NewLogController(handler *clog.Handler) *LogController {
	if handler == nil {
		handler = clog.NewHandler(os.Stdout)
		log.SetHandler(handler)
	}

	return &LogController{
		CurrentLogLevel: currentLevel().String(),
		CurrentLogFile:  "stdout",
		currentHandler:  handler,
	}
}

func currentLevel() log.Level {
	if l, ok := log.Log.(*log.Logger); ok {
		return l.Level
	}

	return log.InfoLevel
}

func (c *LogController) SetLogging(ctx echo.Context) error {
	var req struct {
		LogLevel  string `json:"log_level"`
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	oldLevel := c.CurrentLogLevel
	if err := c.setLoggingLevel(req.LogLevel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.setLoggingOutput(req.LogOutput); err != nil {
		// Level and output change together or not at all.
		_ = c.setLoggingLevel(oldLevel)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) SetLogLevel(ctx echo.Context) error {
	var req struct {
		LogLevel string `json:"log_level"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingLevel(req.LogLevel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingLevel(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", logLevel)
	}

	c.CurrentLogLevel = level.String()
	log.SetLevel(level)

	return nil
}

func (c *LogController) SetLogOutput(ctx echo.Context) error {
	var req struct {
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingOutput(req.LogOutput); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	if logOutput == "stdout" || logOutput == "stderr" {
		writer := os.Stdout
		if logOutput == "stderr" {
			writer = os.Stderr
		}

		c.CurrentLogFile = logOutput
		c.currentHandler.SetOutput(writer)

		return nil
	}

	f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open log output %s", logOutput)
	}

	c.CurrentLogFile = logOutput
	c.currentHandler.SetOutput(f)

	return nil
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ctx.JSON(http.StatusOK, c)
}
