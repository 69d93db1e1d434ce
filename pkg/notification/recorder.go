package notification

import (
	"context"
	"sync"

	"dbhost/pkg/constants"
	"dbhost/pkg/interfaces"
)

// Recorder keeps notifications in memory so a request can return them to its caller
type Recorder struct {
	mu       sync.Mutex
	database string
	items    []interfaces.Notification
}

// NewRecorder creates a recorder tagging notifications with a database UUID
func NewRecorder(database string) *Recorder {
	return &Recorder{database: database}
}

func (r *Recorder) Notify(_ context.Context, level constants.NotificationLevel, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, interfaces.Notification{Level: level, Message: message, Database: r.database})
}

// Notifications returns a copy of everything recorded so far
func (r *Recorder) Notifications() []interfaces.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interfaces.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Multi fans a notification out to every non-nil sink
type Multi []interfaces.Notifier

func (m Multi) Notify(ctx context.Context, level constants.NotificationLevel, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, level, message)
		}
	}
}
