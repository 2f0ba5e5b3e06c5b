package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// MalformedPolicy decides what happens to events whose start is after their end.
type MalformedPolicy string

const (
	PolicyCoerce MalformedPolicy = "coerce" // clamp to zero duration at start
	PolicyDrop   MalformedPolicy = "drop"
)

func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch p := MalformedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyCoerce, PolicyDrop:
		return p, nil
	case "":
		return PolicyCoerce, nil
	}
	return "", fmt.Errorf("unknown malformed event policy %q", s)
}

type IngestOptions struct {
	Policy   MalformedPolicy
	Location *time.Location
}

// Ingest is the boundary that keeps malformed intervals out of the engine.
// rejected holds the malformed originals, whichever policy applied.
func Ingest(events []calendar.Event, opts IngestOptions) (valid, rejected []calendar.Event) {
	valid = make([]calendar.Event, 0, len(events))
	rejected = make([]calendar.Event, 0)

	for _, ev := range events {
		if opts.Location != nil {
			ev.Start = ev.Start.In(opts.Location)
			ev.End = ev.End.In(opts.Location)
		}
		if err := ev.Validate(); err != nil {
			rejected = append(rejected, ev)
			if opts.Policy == PolicyDrop {
				continue
			}
			ev.End = ev.Start
		}
		valid = append(valid, ev)
	}
	return valid, rejected
}
