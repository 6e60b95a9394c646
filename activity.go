package sso

import (
	"context"
	"time"
)

// ActivityEventType classifies audit events emitted by the auth flows.
type ActivityEventType string

const (
	ActivityEventLoginSuccess      ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure      ActivityEventType = "auth.login.failure"
	ActivityEventReissueSuccess    ActivityEventType = "auth.reissue.success"
	ActivityEventReissueFailure    ActivityEventType = "auth.reissue.failure"
	ActivityEventRecoveryRequested ActivityEventType = "auth.recovery.requested"
)

// ActorRef identifies who/what triggered an event.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEvent describes one auth occurrence for audit purposes.
type ActivityEvent struct {
	EventType  ActivityEventType
	Actor      ActorRef
	UserID     string
	HubID      int64
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink receives auth events best-effort. Sinks must not block
// authentication; errors are logged and dropped.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error { return nil }

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}
