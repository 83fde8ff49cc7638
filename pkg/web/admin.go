package web

import (
	"context"
	"net"
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mergington/activities/pkg/clog"
	"github.com/pkg/errors"
)

// AdminServer serves the runtime log controls. It can point logging at any
// file the process can write, so it only listens on loopback addresses.
type AdminServer struct {
	e *echo.Echo
}

// NewAdminServer serves the controls for logHandler, the installed apex/log
// handler; nil installs one on stdout.
func NewAdminServer(logHandler *clog.Handler) *AdminServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	logController := NewLogController(logHandler)
	g := e.Group("/admin")
	g.GET("/log", logController.ShowCurrentLogging)
	g.POST("/log", logController.SetLogging)
	g.POST("/log/level", logController.SetLogLevel)
	g.POST("/log/output", logController.SetLogOutput)

	return &AdminServer{e: e}
}

func (s *AdminServer) Handler() http.Handler {
	return s.e
}

func (s *AdminServer) Start(address string) error {
	if err := checkLoopback(address); err != nil {
		return err
	}

	log.Infof("Serving admin controls on %s", address)
	if err := s.e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// checkLoopback rejects addresses reachable from other hosts, including an
// empty host, which listens on every interface.
func checkLoopback(address string) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return errors.Wrapf(err, "invalid admin address %q", address)
	}

	if host == "localhost" {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}

	return errors.Errorf("admin address %q is not a loopback address", address)
}
