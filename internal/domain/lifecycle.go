package domain

import "time"

// Lifecycle carries the audit timestamps shared by every entity: creation,
// last mutation and logical deletion. It is embedded, not inherited.
type Lifecycle struct {
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func newLifecycle() Lifecycle {
	now := time.Now().UTC()
	return Lifecycle{createdAt: now, updatedAt: now}
}

// RehydrateLifecycle rebuilds timestamps from persisted state.
func RehydrateLifecycle(createdAt, updatedAt time.Time, deletedAt *time.Time) Lifecycle {
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return Lifecycle{createdAt: createdAt, updatedAt: updatedAt, deletedAt: deletedAt}
}

// markUpdated refreshes the mutation timestamp. Every entity mutator calls it.
func (l *Lifecycle) markUpdated() {
	l.updatedAt = time.Now().UTC()
}

// MarkDeleted soft-deletes the entity. Deletion is logical only.
func (l *Lifecycle) MarkDeleted() {
	now := time.Now().UTC()
	l.deletedAt = &now
	l.updatedAt = now
}

// Restore clears a logical deletion.
func (l *Lifecycle) Restore() {
	l.deletedAt = nil
	l.markUpdated()
}

func (l *Lifecycle) CreatedAt() time.Time { return l.createdAt }
func (l *Lifecycle) UpdatedAt() time.Time { return l.updatedAt }

func (l *Lifecycle) DeletedAt() *time.Time {
	if l.deletedAt == nil {
		return nil
	}
	t := *l.deletedAt
	return &t
}

func (l *Lifecycle) IsDeleted() bool { return l.deletedAt != nil }

// dateOnly drops the time-of-day component; loan and reservation arithmetic
// works in whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
