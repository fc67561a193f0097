package drivemirror

import (
	"github.com/sirupsen/logrus"
)

// Session is the handle every operation runs through.
// It binds a Provider and a logger and carries no other state between calls.
type Session struct {
	provider Provider
	logger   *logrus.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *logrus.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session operating on p.
func NewSession(p Provider, opts ...SessionOption) *Session {
	s := &Session{provider: p, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the provider the session operates on.
func (s *Session) Provider() Provider {
	return s.provider
}
