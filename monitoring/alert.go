// Package monitoring reports unexpected failures to the error tracker.
package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rs/zerolog/log"
)

// Init configures Sentry when SENTRY_DSN is set and reports whether it did.
func Init(cfg map[string]string, release string) bool {
	dsn := config.GetString(cfg, "SENTRY_DSN", "")
	if dsn == "" {
		return false
	}
	environment := config.GetString(cfg, "ENVIRONMENT", "dev")

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		Debug:            environment == "dev",
		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to init Sentry")
		return false
	}
	return true
}

// Flush waits for queued events before the process exits.
func Flush() {
	sentry.Flush(5 * time.Second)
}

func Alert(message string, err error) {
	evID := sentry.CurrentHub().CaptureException(errors.Wrap(err, message))
	event := log.Error().Err(err).Str("msg", message)
	if evID != nil {
		event = event.Str("eventId", string(*evID))
	}
	event.Msg("Critical error encountered")
}

func RecoverAndAlert(message string, recovered any) {
	evID := sentry.CurrentHub().Recover(recovered)
	event := log.Error().Interface("panic", recovered).Str("msg", message)
	if evID != nil {
		event = event.Str("eventId", string(*evID))
	}
	event.Msg("Critical error encountered (recover)")
}
