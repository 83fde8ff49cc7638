package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/mergington/activities/pkg/ui"
)

const (
	sessionCookieName = "activities_session"
	sessionIdleTTL    = time.Hour
)

// pendingRemoval is a remove click waiting for the user's yes or no.
type pendingRemoval struct {
	Prompt   string
	Activity string
	Email    string
}

// session is one browser's page. The browser is the one answering
// confirmation prompts, so a remove click is two requests: the first shows
// the prompt, the second carries the answer.
type session struct {
	id   string
	page *ui.Page

	mu       sync.Mutex
	pending  *pendingRemoval
	lastSeen time.Time
}

type confirmAnswer string

const (
	answerNone confirmAnswer = ""
	answerYes  confirmAnswer = "yes"
	answerNo   confirmAnswer = "no"
)

type removalKey struct{}

type removal struct {
	answer   confirmAnswer
	activity string
	email    string
}

func withRemoval(ctx context.Context, r removal) context.Context {
	return context.WithValue(ctx, removalKey{}, r)
}

// Confirm answers from the request when it carries an answer. Otherwise it
// records the prompt for the page to show and declines.
func (s *session) Confirm(ctx context.Context, prompt string) bool {
	r, _ := ctx.Value(removalKey{}).(removal)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.answer {
	case answerYes:
		s.pending = nil
		return true
	case answerNo:
		s.pending = nil
		return false
	default:
		s.pending = &pendingRemoval{Prompt: prompt, Activity: r.activity, Email: r.email}
		return false
	}
}

func (s *session) Pending() *pendingRemoval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *session) clearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

func (s *session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(t)
}

type sessionStore struct {
	api apiclient.ActivitiesAPI

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore(api apiclient.ActivitiesAPI) *sessionStore {
	return &sessionStore{api: api, sessions: make(map[string]*session)}
}

// forRequest returns the caller's session, creating and loading a new page
// when the cookie is missing or unknown.
func (st *sessionStore) forRequest(c echo.Context) (*session, error) {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		st.mu.Lock()
		s, ok := st.sessions[cookie.Value]
		st.mu.Unlock()

		if ok {
			s.touch()
			return s, nil
		}
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	s := &session{id: id, lastSeen: time.Now()}
	s.page = ui.NewPage(st.api, s).WithLogger(log.WithFields(log.Fields{
		"frontend": "web",
		"session":  id,
	}))

	st.mu.Lock()
	st.sweep()
	st.sessions[id] = s
	st.mu.Unlock()

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.page.Load(c.Request().Context())

	return s, nil
}

// sweep drops idle sessions. Callers hold st.mu.
func (st *sessionStore) sweep() {
	cutoff := time.Now().Add(-sessionIdleTTL)
	for id, s := range st.sessions {
		if s.idleSince(cutoff) {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
