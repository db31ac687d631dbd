package services

import (
	"context"

	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/metrics"
)

// CountingSink forwards events to next and counts the ones it fails to take.
type CountingSink struct {
	next    governance.EventSink
	metrics *metrics.MetricsRegistry
}

func NewCountingSink(next governance.EventSink, m *metrics.MetricsRegistry) *CountingSink {
	return &CountingSink{next: next, metrics: m}
}

func (s *CountingSink) Publish(ctx context.Context, ev governance.Event) error {
	err := s.next.Publish(ctx, ev)
	if err != nil && s.metrics != nil {
		s.metrics.EventsPublishErrors.Inc()
	}
	return err
}
