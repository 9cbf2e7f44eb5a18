package domain

import "time"

// LoanStatus is the lifecycle state of a lending transaction.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusReturned LoanStatus = "RETURNED"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusReturned, LoanStatusOverdue:
		return true
	}
	return false
}

// LoanConfig is the plain input record for NewLoan.
type LoanConfig struct {
	ID       int64
	BookCopy *BookCopy
	Member   *Member
	LoanDate time.Time
	DueDate  time.Time
}

// Loan is a lending transaction between a member and a book copy. Creating a
// loan is the sole owner of the AVAILABLE -> ON_LOAN transition; returning it
// hands the copy back unless the copy was damaged or lost in the meantime.
type Loan struct {
	Lifecycle

	id         int64
	bookCopy   *BookCopy
	member     *Member
	loanDate   time.Time
	dueDate    time.Time
	returnDate *time.Time
	status     LoanStatus
}

func NewLoan(cfg LoanConfig) (*Loan, error) {
	if cfg.BookCopy == nil {
		return nil, validationf("loan must reference a book copy")
	}
	if cfg.Member == nil {
		return nil, validationf("loan must reference a member")
	}
	if cfg.LoanDate.IsZero() || cfg.DueDate.IsZero() {
		return nil, validationf("loan dates must be set")
	}
	loanDate := dateOnly(cfg.LoanDate)
	dueDate := dateOnly(cfg.DueDate)
	if dueDate.Before(loanDate) {
		return nil, validationf("due date %s is before loan date %s",
			dueDate.Format(time.DateOnly), loanDate.Format(time.DateOnly))
	}
	if !cfg.BookCopy.IsAvailableForLoan() {
		return nil, illegalStatef("book copy %s is not available for loan", cfg.BookCopy.Barcode())
	}
	loan := &Loan{
		Lifecycle: newLifecycle(),
		id:        cfg.ID,
		bookCopy:  cfg.BookCopy,
		member:    cfg.Member,
		loanDate:  loanDate,
		dueDate:   dueDate,
		status:    LoanStatusActive,
	}
	if err := cfg.BookCopy.ChangeStatus(CopyStatusOnLoan); err != nil {
		return nil, err
	}
	return loan, nil
}

// RehydrateLoan rebuilds a persisted loan in any valid status without
// touching the copy's state machine.
func RehydrateLoan(cfg LoanConfig, status LoanStatus, returnDate *time.Time, lc Lifecycle) (*Loan, error) {
	if cfg.BookCopy == nil {
		return nil, validationf("loan must reference a book copy")
	}
	if cfg.Member == nil {
		return nil, validationf("loan must reference a member")
	}
	if !status.Valid() {
		return nil, validationf("unknown loan status %q", status)
	}
	loan := &Loan{
		Lifecycle: lc,
		id:        cfg.ID,
		bookCopy:  cfg.BookCopy,
		member:    cfg.Member,
		loanDate:  dateOnly(cfg.LoanDate),
		dueDate:   dateOnly(cfg.DueDate),
		status:    status,
	}
	if returnDate != nil {
		d := dateOnly(*returnDate)
		loan.returnDate = &d
	}
	return loan, nil
}

func (l *Loan) ID() int64           { return l.id }
func (l *Loan) SetID(id int64)      { l.id = id }
func (l *Loan) BookCopy() *BookCopy { return l.bookCopy }
func (l *Loan) Member() *Member     { return l.member }
func (l *Loan) LoanDate() time.Time { return l.loanDate }
func (l *Loan) DueDate() time.Time  { return l.dueDate }
func (l *Loan) Status() LoanStatus  { return l.status }

func (l *Loan) ReturnDate() *time.Time {
	if l.returnDate == nil {
		return nil
	}
	t := *l.returnDate
	return &t
}

func (l *Loan) IsReturned() bool { return l.returnDate != nil }

// Return closes the loan on the given date. The copy goes back to AVAILABLE
// only if it is still ON_LOAN; a copy marked DAMAGED or LOST during the loan
// keeps that status.
func (l *Loan) Return(returnDate time.Time) error {
	if returnDate.IsZero() {
		return validationf("return date must be set")
	}
	if l.returnDate != nil {
		return illegalStatef("loan already returned on %s", l.returnDate.Format(time.DateOnly))
	}
	day := dateOnly(returnDate)
	if day.Before(l.loanDate) {
		return validationf("return date %s is before loan date %s",
			day.Format(time.DateOnly), l.loanDate.Format(time.DateOnly))
	}
	l.returnDate = &day
	l.status = LoanStatusReturned
	l.markUpdated()
	if l.bookCopy.Status() == CopyStatusOnLoan {
		if err := l.bookCopy.ChangeStatus(CopyStatusAvailable); err != nil {
			return err
		}
	}
	return nil
}

// MarkOverdueIfNeeded flips an unreturned loan to OVERDUE once today is past
// the due date. Idempotent.
func (l *Loan) MarkOverdueIfNeeded(today time.Time) {
	if l.returnDate != nil {
		return
	}
	if dateOnly(today).After(l.dueDate) && l.status != LoanStatusOverdue {
		l.status = LoanStatusOverdue
		l.markUpdated()
	}
}

// CalculatePenaltyDays prices the late return: overdue days times the per-day
// rate of the book's category. Zero while the loan is open or when returned
// on time.
func (l *Loan) CalculatePenaltyDays() PenaltyDays {
	if l.returnDate == nil || !l.returnDate.After(l.dueDate) {
		return PenaltyDays{}
	}
	overdue := daysBetween(l.dueDate, *l.returnDate)
	days, err := NewPenaltyDays(overdue * l.bookCopy.Book().Category().PenaltyPerDay())
	if err != nil {
		return PenaltyDays{}
	}
	return days
}
