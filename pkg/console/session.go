// Package console is a line oriented front end for the activities page. It
// runs on any reader/writer pair: a local terminal or an SSH session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/mergington/activities/pkg/ui"
	"github.com/pkg/errors"
)

// LineReader yields one line of user input at a time. golang.org/x/term's
// Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

// NewLineReader reads newline separated input from r.
func NewLineReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (r *scannerReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

type Session struct {
	page   *ui.Page
	in     LineReader
	out    io.Writer
	styles styles

	// removeControls are the controls of the last drawn view, numbered from 1.
	removeControls []*ui.RemoveControl
}

func NewSession(api apiclient.ActivitiesAPI, in LineReader, out io.Writer) *Session {
	s := &Session{
		in:     in,
		out:    out,
		styles: newStyles(out),
	}
	s.page = ui.NewPage(api, s)

	return s
}

func (s *Session) WithLogger(logger log.Interface) *Session {
	s.page.WithLogger(logger)
	return s
}

func (s *Session) Page() *ui.Page {
	return s.page
}

// Confirm prints prompt and waits for a yes/no answer. Anything other than
// y or yes, including end of input, is a no.
func (s *Session) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	s.printf("%s [y/N] ", prompt)
	line, err := s.in.ReadLine()
	if err != nil {
		s.printf("\n")
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Run loads the page and processes commands until quit, end of input or
// ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.page.Load(ctx)
	s.draw()
	s.printf("Type 'help' for a list of commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printf("> ")
		line, err := s.in.ReadLine()

		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if quit := s.execute(ctx, line); quit {
			return nil
		}
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// List loads the catalog once and writes the activity cards to out. The
// error line is written, and an error returned, when the load fails.
func List(ctx context.Context, api apiclient.ActivitiesAPI, out io.Writer) error {
	s := NewSession(api, NewLineReader(strings.NewReader("")), out)
	s.page.Load(ctx)

	view := s.page.View()
	var b strings.Builder
	s.writeActivities(&b, view)
	s.printf("%s", b.String())

	if view.ActivitiesList.ErrorText != "" {
		return errors.New(view.ActivitiesList.ErrorText)
	}

	return nil
}
