package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInclusionEnter    EventType = "inclusion_enter"
	EventInclusionLeave    EventType = "inclusion_leave"
	EventInclusionRejected EventType = "inclusion_rejected"
)

// InclusionEvent describes one include call crossing the depth guard.
type InclusionEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Target    string      `json:"target"`
	Depth     int         `json:"depth"`
	Mode      ContextMode `json:"mode"`
	Err       error       `json:"-"`
}

// InclusionHooks defines callbacks for inclusion observability.
// Any hook may be nil.
type InclusionHooks struct {
	OnInclusionEnter    func(context.Context, *InclusionEvent)
	OnInclusionLeave    func(context.Context, *InclusionEvent)
	OnInclusionRejected func(context.Context, *InclusionEvent)
}

// Merge returns hooks that call h first and then other.
func (h InclusionHooks) Merge(other InclusionHooks) InclusionHooks {
	return InclusionHooks{
		OnInclusionEnter:    chain(h.OnInclusionEnter, other.OnInclusionEnter),
		OnInclusionLeave:    chain(h.OnInclusionLeave, other.OnInclusionLeave),
		OnInclusionRejected: chain(h.OnInclusionRejected, other.OnInclusionRejected),
	}
}

func chain(a, b func(context.Context, *InclusionEvent)) func(context.Context, *InclusionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *InclusionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
