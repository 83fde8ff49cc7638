// Package apitest provides an in-process activities backend for tests. It
// implements the backend contract and records every request it receives.
package apitest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/activities"
)

// Request is one request as the backend received it. Path is the escaped
// path exactly as sent on the wire.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

type failure struct {
	status int
	body   string
}

type Backend struct {
	mu       sync.Mutex
	order    []string
	byName   map[string]activities.Activity
	requests []Request
	failures []failure
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server
	Backend *Backend
}

// NewServer starts a backend seeded with the given activities, or with the
// Mergington catalog when none are given. Close it when done.
func NewServer(seed ...activities.Activity) *Server {
	b := NewBackend(seed...)
	return &Server{Server: httptest.NewServer(b.Handler()), Backend: b}
}

func NewBackend(seed ...activities.Activity) *Backend {
	if len(seed) == 0 {
		seed = MergingtonActivities()
	}

	b := &Backend{byName: make(map[string]activities.Activity)}
	for _, a := range seed {
		if _, ok := b.byName[a.Name]; !ok {
			b.order = append(b.order, a.Name)
		}
		b.byName[a.Name] = a
	}

	return b
}

// MergingtonActivities is the catalog the school backend starts with.
func MergingtonActivities() []activities.Activity {
	return []activities.Activity{
		activities.NewActivity("Chess Club", "Learn strategies and compete in chess tournaments",
			"Fridays, 3:30 PM - 5:00 PM", 12, "michael@mergington.edu", "daniel@mergington.edu"),
		activities.NewActivity("Programming Class", "Learn programming fundamentals and build software projects",
			"Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20, "emma@mergington.edu", "sophia@mergington.edu"),
		activities.NewActivity("Gym Class", "Physical education and sports activities",
			"Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30, "john@mergington.edu", "olivia@mergington.edu"),
		activities.NewActivity("Basketball", "Practice drills and play pickup games",
			"Wednesdays, 4:00 PM - 5:30 PM", 15),
		activities.NewActivity("Tennis Club", "Learn tennis technique and play matches",
			"Tuesdays, 4:00 PM - 5:30 PM", 10),
	}
}

func (b *Backend) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(b.recordRequest)

	e.GET("/activities", b.listActivities)
	e.POST("/activities/:name/signup", b.signup)
	e.POST("/activities/:name/unregister", b.unregister)

	return e
}

// FailNext makes the next request answer with status and a raw body,
// whatever its route.
func (b *Backend) FailNext(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, failure{status: status, body: body})
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// RequestsTo returns the requests made with method to the escaped path.
func (b *Backend) RequestsTo(method, path string) []Request {
	var matching []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			matching = append(matching, r)
		}
	}

	return matching
}

func (b *Backend) ResetRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *Backend) Catalog() *activities.Catalog {
	b.mu.Lock()
	defer b.mu.Unlock()

	var list []activities.Activity
	for _, name := range b.order {
		a := b.byName[name]
		a.Participants = append([]string{}, a.Participants...)
		list = append(list, a)
	}

	return activities.NewCatalog(list...)
}

func (b *Backend) recordRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:      req.Method,
			Path:        req.URL.EscapedPath(),
			ContentType: req.Header.Get(echo.HeaderContentType),
			Body:        string(body),
		})

		var injected *failure
		if len(b.failures) > 0 {
			injected = &b.failures[0]
			b.failures = b.failures[1:]
		}
		b.mu.Unlock()

		if injected != nil {
			return c.Blob(injected.status, echo.MIMEApplicationJSON, []byte(injected.body))
		}

		return next(c)
	}
}

func (b *Backend) listActivities(c echo.Context) error {
	return c.JSON(http.StatusOK, b.Catalog())
}

func (b *Backend) signup(c echo.Context) error {
	name := activityName(c)
	email := c.FormValue("email")

	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.byName[name]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Activity not found"})
	}

	for _, p := range a.Participants {
		if p == email {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Student is already signed up"})
		}
	}

	a.Participants = append(append([]string{}, a.Participants...), email)
	b.byName[name] = a

	return c.JSON(http.StatusOK, map[string]string{"message": fmt.Sprintf("Signed up %s for %s", email, name)})
}

func (b *Backend) unregister(c echo.Context) error {
	name := activityName(c)
	email := c.FormValue("email")

	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.byName[name]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Activity not found"})
	}

	var remaining []string
	found := false
	for _, p := range a.Participants {
		if p == email && !found {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}

	if !found {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Student is not registered for this activity"})
	}

	a.Participants = append([]string{}, remaining...)
	b.byName[name] = a

	return c.JSON(http.StatusOK, map[string]string{"message": fmt.Sprintf("Unregistered %s from %s", email, name)})
}

func activityName(c echo.Context) string {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return c.Param("name")
	}

	return name
}
