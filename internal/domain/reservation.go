package domain

import "time"

// ReservationStatus is the lifecycle state of a hold. ACTIVE is the only
// non-terminal state.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusActive, ReservationStatusExpired, ReservationStatusCancelled, ReservationStatusFulfilled:
		return true
	}
	return false
}

// ReservationConfig is the plain input record for NewReservation.
type ReservationConfig struct {
	ID         int64
	BookCopy   *BookCopy
	Member     *Member
	ReservedAt time.Time
	ExpiresAt  time.Time
}

// Reservation holds a copy for a member until it expires, is cancelled, or is
// converted into a loan. The reservation never drives the copy's status;
// loan creation owns that transition.
type Reservation struct {
	Lifecycle

	id         int64
	bookCopy   *BookCopy
	member     *Member
	reservedAt time.Time
	expiresAt  time.Time
	status     ReservationStatus
}

func NewReservation(cfg ReservationConfig) (*Reservation, error) {
	if cfg.BookCopy == nil {
		return nil, validationf("reservation must reference a book copy")
	}
	if cfg.Member == nil {
		return nil, validationf("reservation must reference a member")
	}
	if cfg.ReservedAt.IsZero() || cfg.ExpiresAt.IsZero() {
		return nil, validationf("reservation dates must be set")
	}
	reservedAt := dateOnly(cfg.ReservedAt)
	expiresAt := dateOnly(cfg.ExpiresAt)
	if !reservedAt.Before(expiresAt) {
		return nil, validationf("reservation must start before it expires")
	}
	if !cfg.BookCopy.IsAvailableForReservation() {
		return nil, illegalStatef("book copy %s is not available for reservation", cfg.BookCopy.Barcode())
	}
	return &Reservation{
		Lifecycle:  newLifecycle(),
		id:         cfg.ID,
		bookCopy:   cfg.BookCopy,
		member:     cfg.Member,
		reservedAt: reservedAt,
		expiresAt:  expiresAt,
		status:     ReservationStatusActive,
	}, nil
}

// RehydrateReservation rebuilds a persisted reservation in any valid status.
func RehydrateReservation(cfg ReservationConfig, status ReservationStatus, lc Lifecycle) (*Reservation, error) {
	if cfg.BookCopy == nil {
		return nil, validationf("reservation must reference a book copy")
	}
	if cfg.Member == nil {
		return nil, validationf("reservation must reference a member")
	}
	if !status.Valid() {
		return nil, validationf("unknown reservation status %q", status)
	}
	return &Reservation{
		Lifecycle:  lc,
		id:         cfg.ID,
		bookCopy:   cfg.BookCopy,
		member:     cfg.Member,
		reservedAt: dateOnly(cfg.ReservedAt),
		expiresAt:  dateOnly(cfg.ExpiresAt),
		status:     status,
	}, nil
}

func (r *Reservation) ID() int64                 { return r.id }
func (r *Reservation) SetID(id int64)            { r.id = id }
func (r *Reservation) BookCopy() *BookCopy       { return r.bookCopy }
func (r *Reservation) Member() *Member           { return r.member }
func (r *Reservation) ReservedAt() time.Time     { return r.reservedAt }
func (r *Reservation) ExpiresAt() time.Time      { return r.expiresAt }
func (r *Reservation) Status() ReservationStatus { return r.status }

// Cancel is allowed only while the reservation is ACTIVE.
func (r *Reservation) Cancel() error {
	if r.status != ReservationStatusActive {
		return illegalStatef("only ACTIVE reservations can be cancelled, status is %s", r.status)
	}
	r.status = ReservationStatusCancelled
	r.markUpdated()
	return nil
}

// ExpireIfPast flips ACTIVE to EXPIRED once today is past the expiry date.
// A no-op in every other state, whatever the date.
func (r *Reservation) ExpireIfPast(today time.Time) {
	if r.status != ReservationStatusActive {
		return
	}
	if dateOnly(today).After(r.expiresAt) {
		r.status = ReservationStatusExpired
		r.markUpdated()
	}
}

// MarkFulfilled records the conversion into a loan. The copy's status is not
// touched here: the loan creation owns that transition, so the copy's state
// has exactly one owner.
func (r *Reservation) MarkFulfilled() error {
	if r.status != ReservationStatusActive {
		return illegalStatef("only ACTIVE reservations can be fulfilled, status is %s", r.status)
	}
	r.status = ReservationStatusFulfilled
	r.markUpdated()
	return nil
}
