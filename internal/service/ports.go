package service

import (
	"context"
	"time"

	"github.com/jikkosoft/library-service/internal/domain"
)

// Clock supplies time to the use cases so date arithmetic is testable.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type realClock struct{}

func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }

func (realClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Notifier delivers member-facing messages. Delivery failures are logged,
// never surfaced to the caller.
type Notifier interface {
	NotifyMember(ctx context.Context, member *domain.Member, subject, message string) error
}

type actorKey struct{}

// WithActor tags the context with the id of the acting user.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// systemActor is used when no authenticated actor is on the context, e.g. for
// scheduler sweeps.
const systemActor int64 = 1

func actorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorKey{}).(int64); ok && id > 0 {
		return id
	}
	return systemActor
}
