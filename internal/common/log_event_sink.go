package common

import (
	"context"

	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/logging"
)

// LogEventSink writes governance events to the structured log. Used when the
// Redis event stream is disabled.
type LogEventSink struct{}

var _ governance.EventSink = LogEventSink{}

func (LogEventSink) Publish(_ context.Context, ev governance.Event) error {
	logging.Info("Governance event",
		"event_id", ev.ID,
		"kind", string(ev.Kind),
		"subject", ev.Subject.String(),
		"actor", ev.Actor.String(),
		"detail", ev.Detail,
	)
	return nil
}
