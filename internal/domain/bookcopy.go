package domain

import "strings"

// CopyStatus is the availability state of a physical copy.
type CopyStatus string

const (
	CopyStatusAvailable   CopyStatus = "AVAILABLE"
	CopyStatusOnLoan      CopyStatus = "ON_LOAN"
	CopyStatusDamaged     CopyStatus = "DAMAGED"
	CopyStatusLost        CopyStatus = "LOST"
	CopyStatusDeactivated CopyStatus = "DEACTIVATED"
)

func (s CopyStatus) Valid() bool {
	switch s {
	case CopyStatusAvailable, CopyStatusOnLoan, CopyStatusDamaged, CopyStatusLost, CopyStatusDeactivated:
		return true
	}
	return false
}

// copyTransitions is the allowed-transition table. DEACTIVATED is terminal
// and has no row.
var copyTransitions = map[CopyStatus][]CopyStatus{
	CopyStatusAvailable: {CopyStatusOnLoan, CopyStatusDamaged, CopyStatusLost, CopyStatusDeactivated},
	CopyStatusOnLoan:    {CopyStatusAvailable, CopyStatusDamaged, CopyStatusLost},
	CopyStatusDamaged:   {CopyStatusDeactivated},
	CopyStatusLost:      {CopyStatusDeactivated},
}

// BookCopyConfig is the plain input record for NewBookCopy.
type BookCopyConfig struct {
	ID            int64
	Book          *Book
	Library       *Library
	CopyNumber    int
	Barcode       string
	ShelfLocation string
}

// BookCopy is one physical inventory unit of a book at a library. It owns the
// availability state machine; loans and reservations drive it only through
// ChangeStatus. Business key: library + book + copy number.
type BookCopy struct {
	Lifecycle

	id            int64
	book          *Book
	library       *Library
	copyNumber    CopyNumber
	barcode       string
	status        CopyStatus
	shelfLocation string
}

func NewBookCopy(cfg BookCopyConfig) (*BookCopy, error) {
	if cfg.Book == nil {
		return nil, validationf("book copy must reference a book")
	}
	if cfg.Library == nil {
		return nil, validationf("book copy must reference a library")
	}
	number, err := NewCopyNumber(cfg.CopyNumber)
	if err != nil {
		return nil, err
	}
	barcode := strings.TrimSpace(cfg.Barcode)
	if barcode == "" {
		return nil, validationf("book copy barcode must not be blank")
	}
	location := strings.TrimSpace(cfg.ShelfLocation)
	if location == "" {
		return nil, validationf("book copy shelf location must not be blank")
	}
	return &BookCopy{
		Lifecycle:     newLifecycle(),
		id:            cfg.ID,
		book:          cfg.Book,
		library:       cfg.Library,
		copyNumber:    number,
		barcode:       barcode,
		status:        CopyStatusAvailable,
		shelfLocation: location,
	}, nil
}

// RehydrateBookCopy rebuilds a persisted copy in any valid status.
func RehydrateBookCopy(cfg BookCopyConfig, status CopyStatus, lc Lifecycle) (*BookCopy, error) {
	c, err := NewBookCopy(cfg)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, validationf("unknown copy status %q", status)
	}
	c.status = status
	c.Lifecycle = lc
	return c, nil
}

func (c *BookCopy) ID() int64              { return c.id }
func (c *BookCopy) SetID(id int64)         { c.id = id }
func (c *BookCopy) Book() *Book            { return c.book }
func (c *BookCopy) Library() *Library      { return c.library }
func (c *BookCopy) CopyNumber() CopyNumber { return c.copyNumber }
func (c *BookCopy) Barcode() string        { return c.barcode }
func (c *BookCopy) Status() CopyStatus     { return c.status }
func (c *BookCopy) ShelfLocation() string  { return c.shelfLocation }

// IsAvailableForLoan reports whether a new loan may claim this copy.
func (c *BookCopy) IsAvailableForLoan() bool {
	return c.status == CopyStatusAvailable
}

// IsAvailableForReservation reports whether a new reservation may hold this copy.
func (c *BookCopy) IsAvailableForReservation() bool {
	return c.status == CopyStatusAvailable
}

// ChangeStatus moves the copy along the allowed-transition table. A
// deactivated copy rejects every change.
func (c *BookCopy) ChangeStatus(next CopyStatus) error {
	if !next.Valid() {
		return validationf("unknown copy status %q", next)
	}
	if c.status == CopyStatusDeactivated {
		return transitionf(c.status, next)
	}
	for _, allowed := range copyTransitions[c.status] {
		if next == allowed {
			c.status = next
			c.markUpdated()
			return nil
		}
	}
	return transitionf(c.status, next)
}

func (c *BookCopy) UpdateShelfLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return validationf("book copy shelf location must not be blank")
	}
	c.shelfLocation = location
	c.markUpdated()
	return nil
}

// Equal compares by the business key: library, book and copy number.
func (c *BookCopy) Equal(other *BookCopy) bool {
	if other == nil {
		return false
	}
	return c.library.Equal(other.library) &&
		c.book.isbn == other.book.isbn &&
		c.copyNumber == other.copyNumber
}
