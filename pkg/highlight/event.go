package highlight

import (
	"fmt"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

// EventKind identifies a pointer event.
type EventKind int

const (
	EventHover EventKind = iota + 1
	EventUnhover
	EventClick
	EventClickBackground
)

var eventNames = map[EventKind]string{
	EventHover:           "hover",
	EventUnhover:         "unhover",
	EventClick:           "click",
	EventClickBackground: "background",
}

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind converts a wire name ("hover", "unhover", "click",
// "background") into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	for k, name := range eventNames {
		if name == s {
			return k, nil
		}
	}
	return 0, terrors.New(terrors.ErrCodeInvalidEvent, "unknown event %q", s)
}

// Event is a pointer event delivered by the host.
type Event struct {
	Kind   EventKind
	NodeID string // Empty for Unhover and ClickBackground
}

// Hover is the pointer entering node id.
func Hover(id string) Event { return Event{Kind: EventHover, NodeID: id} }

// Unhover is the pointer leaving the hovered node.
func Unhover() Event { return Event{Kind: EventUnhover} }

// Click is a click on node id.
func Click(id string) Event { return Event{Kind: EventClick, NodeID: id} }

// ClickBackground is a click that hit no node.
func ClickBackground() Event { return Event{Kind: EventClickBackground} }

func (e Event) String() string {
	if e.NodeID == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + "(" + e.NodeID + ")"
}
