// Package sshui serves the console front end over SSH. Every SSH session
// gets its own page.
package sshui

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/apex/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/mergington/activities/pkg/console"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

type Server struct {
	api         apiclient.ActivitiesAPI
	address     string
	hostKeyPath string
	server      *ssh.Server
}

func NewServer(api apiclient.ActivitiesAPI, address, hostKeyPath string) *Server {
	return &Server{api: api, address: address, hostKeyPath: hostKeyPath}
}

// Start builds the SSH server. A missing host key file is generated.
func (s *Server) Start() error {
	var err error
	s.server, err = wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(s.hostKeyPath),
		wish.WithMiddleware(s.consoleMiddleware),
	)

	if err != nil {
		return errors.Wrap(err, "failed to create SSH server")
	}

	return nil
}

func (s *Server) ListenAndServe() error {
	if s.server == nil {
		return fmt.Errorf("ssh server not started")
	}

	log.Infof("Serving activities console over SSH on %s", s.address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}

	return nil
}

// Serve accepts connections on l instead of listening on the configured address.
func (s *Server) Serve(l net.Listener) error {
	if s.server == nil {
		return fmt.Errorf("ssh server not started")
	}

	if err := s.server.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

func (s *Server) consoleMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.handleSession(sess)
		next(sess)
	}
}

func (s *Server) handleSession(sess ssh.Session) {
	logger := log.WithFields(log.Fields{
		"frontend": "ssh",
		"user":     sess.User(),
		"remote":   sess.RemoteAddr().String(),
	})
	logger.Info("Session started")

	in, out := sessionIO(sess)
	err := console.NewSession(s.api, in, out).WithLogger(logger).Run(sess.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Session ended with error")
	}

	logger.Info("Session ended")
}

// sessionIO gives a PTY session line editing and echo; without a PTY the
// client already sends whole lines.
func sessionIO(sess ssh.Session) (console.LineReader, io.Writer) {
	if _, _, isPty := sess.Pty(); isPty {
		t := term.NewTerminal(sess, "")
		return t, t
	}

	return console.NewLineReader(sess), sess
}
