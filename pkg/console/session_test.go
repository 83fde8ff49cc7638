package console

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mergington/activities/pkg/activities"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/mergington/activities/pkg/apiclient/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, api apiclient.ActivitiesAPI, lines ...string) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	in := NewLineReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))

	s := NewSession(api, in, &out)
	require.NoError(t, s.Run(context.Background()))

	return s, out.String()
}

func TestSession_DrawsCatalog(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second), "quit")

	assert.Contains(t, out, "Chess Club")
	assert.Contains(t, out, "Description: Learn strategies and compete in chess tournaments")
	assert.Contains(t, out, "Max Participants: 12")
	assert.Contains(t, out, "[1] michael@mergington.edu")
	assert.Contains(t, out, "No participants yet.")
	assert.Contains(t, out, "0) -- Select an activity --")
	assert.Contains(t, out, "5) Tennis Club")
}

func TestSession_SignupFlow(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	s, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second),
		"email x@y.com",
		"select Chess Club",
		"submit",
		"quit",
	)

	posts := srv.Backend.RequestsTo(http.MethodPost, "/activities/Chess%20Club/signup")
	require.Len(t, posts, 1)
	assert.Equal(t, "email=x%40y.com", posts[0].Body)
	assert.Contains(t, out, "Signed up x@y.com for Chess Club")
	assert.Equal(t, "", s.Page().View().SignupForm.Email)
}

func TestSession_SignupCommandBySelectNumber(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second),
		"signup Michael@Mergington.edu 1",
		"quit",
	)

	posts := srv.Backend.RequestsTo(http.MethodPost, "/activities/Chess%20Club/signup")
	require.Len(t, posts, 1)
	assert.Equal(t, "email=Michael%40Mergington.edu", posts[0].Body, "email case is kept")
	assert.Contains(t, out, "Signed up Michael@Mergington.edu for Chess Club")
}

func TestSession_SignupErrorShown(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second),
		"signup michael@mergington.edu Chess Club",
		"quit",
	)

	assert.Contains(t, out, "Student is already signed up")
}

func TestSession_RemoveDeclined(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second),
		"remove 1",
		"n",
		"quit",
	)

	assert.Contains(t, out, "Remove michael@mergington.edu from Chess Club? [y/N]")
	assert.Empty(t, srv.Backend.RequestsTo(http.MethodPost, "/activities/Chess%20Club/unregister"))
}

func TestSession_RemoveConfirmed(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, out := runScript(t, apiclient.NewClient(srv.URL, 5*time.Second),
		"remove 2",
		"yes",
		"quit",
	)

	posts := srv.Backend.RequestsTo(http.MethodPost, "/activities/Chess%20Club/unregister")
	require.Len(t, posts, 1)
	assert.Equal(t, "email=daniel%40mergington.edu", posts[0].Body)
	assert.Contains(t, out, "Unregistered daniel@mergington.edu from Chess Club")
}

func TestSession_ConfirmAtEndOfInputDeclines(t *testing.T) {
	mock := apiclient.NewMockClient(activities.NewCatalog(activities.NewActivity("Chess Club", "", "", 1, "a@b.c")))

	_, _ = runScript(t, mock, "remove 1")

	assert.Zero(t, mock.CallsTo("Unregister"))
}

func TestSession_BadInput(t *testing.T) {
	mock := apiclient.NewMockClient(activities.NewCatalog(activities.NewActivity("Chess Club", "", "", 1)))

	_, out := runScript(t, mock, "remove 7", "select Nope", "dance", "")

	assert.Contains(t, out, "No such participant number: 7")
	assert.Contains(t, out, "No such activity: Nope")
	assert.Contains(t, out, "Unknown command: dance")
	assert.Zero(t, mock.CallsTo("Unregister"))
	assert.Zero(t, mock.CallsTo("Signup"))
}

func TestSession_LoadError(t *testing.T) {
	srv := apitest.NewServer()
	url := srv.URL
	srv.Close()

	_, out := runScript(t, apiclient.NewClient(url, time.Second), "quit")

	assert.Contains(t, out, "Error loading activities.")
}

func TestSession_RefreshRefetches(t *testing.T) {
	mock := apiclient.NewMockClient(activities.NewCatalog())

	_, _ = runScript(t, mock, "refresh", "list", "quit")

	assert.Equal(t, 2, mock.CallsTo("GetActivities"))
}

func TestList(t *testing.T) {
	mock := apiclient.NewMockClient(activities.NewCatalog(
		activities.NewActivity("Tennis Club", "Tennis", "Tuesdays", 10, "a@mergington.edu"),
		activities.NewActivity("Basketball", "Hoops", "Fridays", 15),
	))
	var out bytes.Buffer

	require.NoError(t, List(context.Background(), mock, &out))

	assert.Contains(t, out.String(), "[1] a@mergington.edu")
	assert.Contains(t, out.String(), "No participants yet.")
	assert.NotContains(t, out.String(), "Sign Up for an Activity")
	assert.Less(t, strings.Index(out.String(), "Tennis Club"), strings.Index(out.String(), "Basketball"))
	assert.Equal(t, 1, mock.CallsTo("GetActivities"))
}

func TestList_LoadError(t *testing.T) {
	mock := apiclient.NewMockClient(nil).SetFetchError(apiclient.ErrBackend)
	var out bytes.Buffer

	assert.Error(t, List(context.Background(), mock, &out))
	assert.Contains(t, out.String(), "Error loading activities.")
}
