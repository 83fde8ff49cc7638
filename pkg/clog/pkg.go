// Package clog is the apex/log handler used by the activities commands.
package clog

import (
	"io"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Setup makes a Handler writing to w the apex/log handler and sets the level.
func Setup(w io.WriteCloser, level string) (*Handler, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	h := NewHandler(w)
	log.SetHandler(h)
	log.SetLevel(lvl)

	return h, nil
}
