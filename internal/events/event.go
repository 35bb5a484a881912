package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event channel names the frontend subscribes to.
const (
	SessionStatus    = "event:session:status"
	GenerationStatus = "event:generation:status"
	CreditsUpdated   = "event:credits:updated"
)

// Event is the payload pushed to the UI for session and generation-run
// status changes.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	RunKey    string            `json:"runKey,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const runContextKey contextKey = "zoomdocs/events/run"

// WithRun returns a derived context annotated with the given run key so
// emitters can automatically scope payloads.
func WithRun(ctx context.Context, runKey string) context.Context {
	if strings.TrimSpace(runKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, runContextKey, runKey)
}

// RunFromContext extracts the run key associated with ctx.
func RunFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(runContextKey).(string); ok {
		return v
	}
	return ""
}

func newEvent(eventType EventType, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info Event.
func NewInfo(message string) Event {
	return newEvent(EventInfo, message)
}

// NewWarn creates a warn Event.
func NewWarn(message string) Event {
	return newEvent(EventWarn, message)
}

// NewError creates an error Event.
func NewError(message string) Event {
	return newEvent(EventError, message)
}

// NewSuccess creates a success Event.
func NewSuccess(message string) Event {
	return newEvent(EventSuccess, message)
}
