// Package web is the browser front end: a server rendered activities page
// with one page per browser session.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type Server struct {
	e        *echo.Echo
	sessions *sessionStore
}

// NewServer builds the front end for api. Log controls are not served here,
// see AdminServer.
func NewServer(api apiclient.ActivitiesAPI) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	s := &Server{e: e, sessions: newSessionStore(api)}
	setupRoutes(e, s.sessions)

	return s
}

func setupRoutes(e *echo.Echo, sessions *sessionStore) {
	pageController := NewPageController(sessions)
	e.GET("/", pageController.Index)
	e.POST("/signup", pageController.Signup)
	e.POST("/unregister", pageController.Unregister)
	e.POST("/refresh", pageController.Refresh)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(address string) error {
	log.Infof("Serving activities page on %s", address)
	if err := s.e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
