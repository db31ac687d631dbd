package governance

import (
	"context"
	"time"
)

type EventKind string

const (
	EventOperationalChanged EventKind = "OperationalChanged"
	EventCallerAuthorized   EventKind = "CallerAuthorized"
	EventCallerDeauthorized EventKind = "CallerDeauthorized"
	EventAirlineFunded      EventKind = "AirlineFunded"
	EventAirlineVoted       EventKind = "AirlineVoted"
	EventAirlineRegistered  EventKind = "AirlineRegistered"
)

// Event is an entry of the append-only governance audit trail.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Subject   Address   `json:"subject"`
	Actor     Address   `json:"actor"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventSink receives events after the transaction that produced them has
// committed. Publish failures never undo the committed mutation.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

type discardSink struct{}

func (discardSink) Publish(context.Context, Event) error { return nil }
