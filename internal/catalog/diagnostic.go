package catalog

import "fmt"

// Severity is how serious a data-quality diagnostic is.
type Severity int

const (
	// SeverityInfo marks advisory issues; the entry is kept.
	SeverityInfo Severity = iota
	// SeverityWarning marks entries that were dropped.
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Kind identifies the data-quality issue a diagnostic reports.
type Kind int

const (
	KindUnknownMerchant Kind = iota
	KindUnknownLocation
	KindMissingPrice
	KindInvalidPrice
	KindMissingMerchant
	KindMalformedEntry
	KindDuplicateID
)

// String returns the snake_case code of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknownMerchant:
		return "unknown_merchant"
	case KindUnknownLocation:
		return "unknown_location"
	case KindMissingPrice:
		return "missing_price"
	case KindInvalidPrice:
		return "invalid_price"
	case KindMissingMerchant:
		return "missing_merchant"
	case KindMalformedEntry:
		return "malformed_entry"
	case KindDuplicateID:
		return "duplicate_id"
	default:
		return "unknown"
	}
}

// Event is a single diagnostic produced while parsing sale offers.
type Event struct {
	Severity  Severity
	Kind      Kind
	ItemLabel string
	Detail    string
}

// String formats the event as "[kind] item: detail".
func (e Event) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.ItemLabel, e.Detail)
}

// Sink receives diagnostics. Parsing never fails because of them.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Collector accumulates events in emission order.
type Collector struct {
	Events []Event
}

// Emit appends e.
func (c *Collector) Emit(e Event) {
	c.Events = append(c.Events, e)
}

// Len returns the number of collected events.
func (c *Collector) Len() int {
	return len(c.Events)
}

// Count returns how many events of kind k were collected.
func (c *Collector) Count(k Kind) int {
	n := 0
	for _, e := range c.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// BySeverity returns the events with severity s, in emission order.
func (c *Collector) BySeverity(s Severity) []Event {
	var out []Event
	for _, e := range c.Events {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

// Tee returns a Sink that forwards every event to all sinks.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			s.Emit(e)
		}
	})
}
