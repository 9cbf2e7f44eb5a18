package domain

import (
	"regexp"
	"strings"
)

// Value objects are immutable, self-validating wrappers around primitives.
// The zero value of each is invalid; construct through the New* functions.

// isbn13Year is the first publication year for which 13-digit ISBNs apply.
const isbn13Year = 2007

var (
	digitsRe = regexp.MustCompile(`^\d+$`)
	emailRe  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ISBN is validated against the publication year of the book that owns it:
// 10 digits before 2007, 13 digits from 2007 on.
type ISBN struct {
	value string
}

func NewISBN(raw string, publicationYear int) (ISBN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ISBN{}, validationf("isbn must not be blank")
	}
	if !digitsRe.MatchString(raw) {
		return ISBN{}, validationf("isbn %q must contain digits only", raw)
	}
	want := 13
	if publicationYear < isbn13Year {
		want = 10
	}
	if len(raw) != want {
		return ISBN{}, validationf("isbn %q must have %d digits for publication year %d", raw, want, publicationYear)
	}
	return ISBN{value: raw}, nil
}

func (i ISBN) Value() string  { return i.value }
func (i ISBN) String() string { return i.value }

// Email is stored trimmed and lowercased.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if !emailRe.MatchString(norm) {
		return Email{}, validationf("invalid email %q", raw)
	}
	return Email{value: norm}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// CopyNumber distinguishes copies of one book within one library.
type CopyNumber struct {
	value int
}

func NewCopyNumber(value int) (CopyNumber, error) {
	if value < 1 {
		return CopyNumber{}, validationf("copy number must be positive, got %d", value)
	}
	return CopyNumber{value: value}, nil
}

func (c CopyNumber) Value() int { return c.value }

// PenaltyDays accumulates overdue fee days.
type PenaltyDays struct {
	value int
}

func NewPenaltyDays(value int) (PenaltyDays, error) {
	if value < 0 {
		return PenaltyDays{}, validationf("penalty days must not be negative, got %d", value)
	}
	return PenaltyDays{value: value}, nil
}

func (p PenaltyDays) Value() int { return p.value }

func (p PenaltyDays) Add(other PenaltyDays) PenaltyDays {
	return PenaltyDays{value: p.value + other.value}
}

// BookTitle is a non-blank, trimmed title.
type BookTitle struct {
	value string
}

func NewBookTitle(raw string) (BookTitle, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return BookTitle{}, validationf("book title must not be blank")
	}
	return BookTitle{value: raw}, nil
}

func (t BookTitle) Value() string  { return t.value }
func (t BookTitle) String() string { return t.value }
