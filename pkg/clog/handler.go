package clog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// Handler is the apex/log handler installed by the activities commands.
// Each entry is one line:
//
//	ERROR 2024-09-01 08:30:00 Error re-fetching activities   frontend=web session=...
//
// Page loggers add frontend and session fields, so a web or SSH user's
// entries can be picked out of a shared log. The admin log controls swap
// the output at runtime through SetOutput.
type Handler struct {
	mu     sync.Mutex
	Writer io.WriteCloser
	now    func() time.Time
}

func NewHandler(w io.WriteCloser) *Handler {
	return &Handler{Writer: w, now: time.Now}
}

// SetOutput sends later entries to w. The previous output is closed unless
// it is the process's stdout or stderr.
func (h *Handler) SetOutput(w io.WriteCloser) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeWriter()
	h.Writer = w
}

func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeWriter()
}

func (h *Handler) closeWriter() {
	if h.Writer == nil || h.Writer == os.Stdout || h.Writer == os.Stderr {
		return
	}

	_ = h.Writer.Close()
}

func (h *Handler) HandleLog(e *log.Entry) error {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var line strings.Builder
	_, _ = fmt.Fprintf(&line, "%5s %s %-25s", strings.ToUpper(e.Level.String()), h.now().Format(time.DateTime), e.Message)
	for _, name := range names {
		_, _ = fmt.Fprintf(&line, " %s=%v", name, e.Fields[name])
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.Writer, line.String())

	return err
}
