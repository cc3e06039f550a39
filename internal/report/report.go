// Package report sends connection failures to an external error tracker.
package report

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
)

func logger() *log.Logger { return log.Default().WithPrefix("report") }

// Reporter receives errors with contextual tags. Implementations must be
// safe for concurrent use.
type Reporter interface {
	Report(err error, tags map[string]string)
}

// Nop discards all reports.
type Nop struct{}

func (Nop) Report(error, map[string]string) {}

// Sentry forwards errors to a Sentry project.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry builds a reporter with its own hub so reports carry only the
// tags passed to each call.
func NewSentry(dsn, environment string) (*Sentry, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return nil, err
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Report(err error, tags map[string]string) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		s.hub.CaptureException(err)
	})
	logger().Debug("reported error", "error", err)
}

// Close flushes buffered events. Call before process exit.
func (s *Sentry) Close() {
	if !s.hub.Flush(2 * time.Second) {
		logger().Warn("timed out flushing error reports")
	}
}
