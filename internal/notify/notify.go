// Package notify delivers the short status messages shown after a user action.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/sse"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Messages shown after blog mutations.
const (
	MsgPostCreated = "Post published successfully!"
	MsgPostUpdated = "Post updated successfully!"
	MsgPostDeleted = "Post deleted successfully!"
	MsgSaveFailed  = "Could not save your changes. Please try again."
)

const EventNotification = "notification"

type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

func New(message string, kind Kind) Notification {
	return Notification{ID: uuid.NewString(), Message: message, Kind: kind}
}

// Sink receives a notification after each mutating call.
type Sink interface {
	Notify(message string, kind Kind)
}

// SSESink broadcasts notifications to every open page.
type SSESink struct {
	clients *sse.Clients
}

func NewSSESink(clients *sse.Clients) *SSESink {
	return &SSESink{clients: clients}
}

func (s *SSESink) Notify(message string, kind Kind) {
	data, err := json.Marshal(New(message, kind))
	if err != nil {
		return
	}
	s.clients.Broadcast(sse.Event{Name: EventNotification, Data: string(data)})
}

// LogSink writes notifications to the application log.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(message string, kind Kind) {
	ev := s.logger.Info()
	if kind == KindError {
		ev = s.logger.Warn()
	}
	ev.Str("kind", string(kind)).Msg(message)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(message string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, New(message, kind))
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Multi forwards to several sinks in order.
type Multi []Sink

func (m Multi) Notify(message string, kind Kind) {
	for _, s := range m {
		s.Notify(message, kind)
	}
}
