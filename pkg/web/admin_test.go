package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/clog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func setupAdmin(t *testing.T) *httptest.Server {
	t.Helper()

	handler := clog.NewHandler(nopWriteCloser{Writer: io.Discard})
	admin := httptest.NewServer(NewAdminServer(handler).Handler())
	t.Cleanup(func() {
		admin.Close()
		handler.Close()
		log.SetLevel(log.InfoLevel)
	})

	return admin
}

func postJSON(t *testing.T, target, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(target, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestAdminServer_LogLevel(t *testing.T) {
	admin := setupAdmin(t)

	status, body := postJSON(t, admin.URL+"/admin/log/level", `{"log_level":"debug"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"current_log_level":"debug"`)

	status, _ = postJSON(t, admin.URL+"/admin/log/level", `{"log_level":"loud"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminServer_LogOutputToFile(t *testing.T) {
	admin := setupAdmin(t)
	path := filepath.Join(t.TempDir(), "activities.log")

	status, body := postJSON(t, admin.URL+"/admin/log/output", `{"log_output":"`+path+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"current_log_file":"`+path+`"`)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAdminServer_SetLoggingIsAllOrNothing(t *testing.T) {
	admin := setupAdmin(t)
	missingDir := filepath.Join(t.TempDir(), "missing", "activities.log")

	status, _ := postJSON(t, admin.URL+"/admin/log", `{"log_level":"warn","log_output":"`+missingDir+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	resp, err := http.Get(admin.URL + "/admin/log")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `"current_log_level":"info"`)
	assert.Contains(t, string(b), `"current_log_file":"stdout"`)
}

func TestCheckLoopback(t *testing.T) {
	tests := []struct {
		address string
		ok      bool
	}{
		{address: "localhost:8081", ok: true},
		{address: "127.0.0.1:8081", ok: true},
		{address: "[::1]:8081", ok: true},
		{address: ":8081", ok: false},
		{address: "0.0.0.0:8081", ok: false},
		{address: "10.1.2.3:8081", ok: false},
		{address: "admin.mergington.edu:8081", ok: false},
		{address: "no-port", ok: false},
	}

	for _, test := range tests {
		t.Run(test.address, func(t *testing.T) {
			err := checkLoopback(test.address)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAdminServer_StartRefusesPublicAddress(t *testing.T) {
	assert.Error(t, NewAdminServer(clog.NewHandler(nopWriteCloser{Writer: io.Discard})).Start(":0"))
}
