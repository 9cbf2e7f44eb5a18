package model

import (
	"strings"
	"time"

	"github.com/jikkosoft/library-service/internal/domain"
)

// Date is a day-granular timestamp bound from "2006-01-02" JSON strings.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

type CreateCategoryRequest struct {
	Name          string `json:"name" validate:"required"`
	MaxLoanDays   int    `json:"maxLoanDays" validate:"required,gt=0"`
	PenaltyPerDay int    `json:"penaltyPerDay" validate:"gte=0"`
}

type CreateBookRequest struct {
	ISBN            string  `json:"isbn" validate:"required"`
	Title           string  `json:"title" validate:"required"`
	AuthorIDs       []int64 `json:"authorIds" validate:"required,min=1,dive,gt=0"`
	PublicationYear int     `json:"publicationYear" validate:"required"`
	CategoryID      int64   `json:"categoryId" validate:"required,gt=0"`
}

type UpdateBookYearRequest struct {
	PublicationYear int `json:"publicationYear" validate:"required"`
}

type CreateAuthorRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Nationality string `json:"nationality" validate:"required"`
	DateOfBirth *Date  `json:"dateOfBirth,omitempty"`
	Biography   string `json:"biography,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

type CreateLibraryRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city,omitempty"`
}

type RegisterUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles,omitempty" validate:"omitempty,dive,oneof=NORMAL_USER ADMIN SUPER_USER"`
}

type ChangeUserPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type RegisterMemberRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	LibraryID int64  `json:"libraryId" validate:"omitempty,gt=0"`
}

type UpdateMemberRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type AddBookCopyRequest struct {
	BookID        int64  `json:"bookId" validate:"required,gt=0"`
	LibraryID     int64  `json:"libraryId" validate:"required,gt=0"`
	CopyNumber    int    `json:"copyNumber" validate:"required,gte=1"`
	Barcode       string `json:"barcode,omitempty"`
	ShelfLocation string `json:"shelfLocation" validate:"required"`
}

type ChangeCopyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE ON_LOAN DAMAGED LOST DEACTIVATED"`
}

type UpdateShelfLocationRequest struct {
	ShelfLocation string `json:"shelfLocation" validate:"required"`
}

type BorrowBookRequest struct {
	MemberID   int64 `json:"memberId" validate:"required,gt=0"`
	BookCopyID int64 `json:"bookCopyId" validate:"required,gt=0"`
}

type ReturnBookRequest struct {
	ReturnDate Date `json:"returnDate" validate:"required"`
}

type ReserveBookRequest struct {
	MemberID   int64 `json:"memberId" validate:"required,gt=0"`
	BookCopyID int64 `json:"bookCopyId" validate:"required,gt=0"`
	ExpiresAt  Date  `json:"expiresAt" validate:"required"`
}

type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MaxLoanDays   int    `json:"maxLoanDays"`
	PenaltyPerDay int    `json:"penaltyPerDay"`
}

type Author struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Nationality string `json:"nationality"`
}

type Library struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
}

type User struct {
	ID     int64    `json:"id"`
	Email  string   `json:"email"`
	Active bool     `json:"active"`
	Roles  []string `json:"roles,omitempty"`
}

type Book struct {
	ID              int64    `json:"id"`
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	PublicationYear int      `json:"publicationYear"`
	Category        string   `json:"category"`
}

type BookCopy struct {
	ID            int64  `json:"id"`
	BookID        int64  `json:"bookId"`
	LibraryID     int64  `json:"libraryId"`
	CopyNumber    int    `json:"copyNumber"`
	Barcode       string `json:"barcode"`
	Status        string `json:"status"`
	ShelfLocation string `json:"shelfLocation"`
}

type Member struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
}

type Loan struct {
	ID          int64  `json:"id"`
	BookCopyID  int64  `json:"bookCopyId"`
	MemberID    int64  `json:"memberId"`
	LoanDate    string `json:"loanDate"`
	DueDate     string `json:"dueDate"`
	ReturnDate  string `json:"returnDate,omitempty"`
	Status      string `json:"status"`
	PenaltyDays int    `json:"penaltyDays"`
}

type Reservation struct {
	ID         int64  `json:"id"`
	BookCopyID int64  `json:"bookCopyId"`
	MemberID   int64  `json:"memberId"`
	ReservedAt string `json:"reservedAt"`
	ExpiresAt  string `json:"expiresAt"`
	Status     string `json:"status"`
}

type MemberSummary struct {
	Member           Member `json:"member"`
	ActiveLoans      int    `json:"activeLoans"`
	OverdueLoans     int    `json:"overdueLoans"`
	TotalPenaltyDays int    `json:"totalPenaltyDays"`
	EligibleForLoan  bool   `json:"eligibleForLoan"`
	Loans            []Loan `json:"loans"`
}

func CategoryFromDomain(c *domain.Category) Category {
	return Category{
		ID:            c.ID(),
		Name:          c.Name(),
		MaxLoanDays:   c.MaxLoanDays(),
		PenaltyPerDay: c.PenaltyPerDay(),
	}
}

func AuthorFromDomain(a *domain.Author) Author {
	return Author{
		ID:          a.ID(),
		FirstName:   a.FirstName(),
		LastName:    a.LastName(),
		Nationality: a.Nationality(),
	}
}

func LibraryFromDomain(l *domain.Library) Library {
	return Library{
		ID:      l.ID(),
		Name:    l.Name(),
		Address: l.Address(),
		City:    l.City(),
	}
}

func UserFromDomain(u *domain.User) User {
	roles := make([]string, 0, len(u.Roles()))
	for _, r := range u.Roles() {
		roles = append(roles, string(r.RoleType()))
	}
	return User{
		ID:     u.ID(),
		Email:  u.Email().Value(),
		Active: u.Active(),
		Roles:  roles,
	}
}

func BookFromDomain(b *domain.Book) Book {
	authors := make([]string, 0, len(b.Authors()))
	for _, a := range b.Authors() {
		authors = append(authors, a.FullName())
	}
	return Book{
		ID:              b.ID(),
		ISBN:            b.ISBN().Value(),
		Title:           b.Title().Value(),
		Authors:         authors,
		PublicationYear: b.PublicationYear(),
		Category:        b.Category().Name(),
	}
}

func BookCopyFromDomain(c *domain.BookCopy) BookCopy {
	return BookCopy{
		ID:            c.ID(),
		BookID:        c.Book().ID(),
		LibraryID:     c.Library().ID(),
		CopyNumber:    c.CopyNumber().Value(),
		Barcode:       c.Barcode(),
		Status:        string(c.Status()),
		ShelfLocation: c.ShelfLocation(),
	}
}

func MemberFromDomain(m *domain.Member) Member {
	return Member{
		ID:        m.ID(),
		FirstName: m.FirstName(),
		LastName:  m.LastName(),
		Email:     m.Email().Value(),
		Active:    m.Active(),
	}
}

func LoanFromDomain(l *domain.Loan) Loan {
	out := Loan{
		ID:          l.ID(),
		BookCopyID:  l.BookCopy().ID(),
		MemberID:    l.Member().ID(),
		LoanDate:    l.LoanDate().Format(time.DateOnly),
		DueDate:     l.DueDate().Format(time.DateOnly),
		Status:      string(l.Status()),
		PenaltyDays: l.CalculatePenaltyDays().Value(),
	}
	if rd := l.ReturnDate(); rd != nil {
		out.ReturnDate = rd.Format(time.DateOnly)
	}
	return out
}

func ReservationFromDomain(r *domain.Reservation) Reservation {
	return Reservation{
		ID:         r.ID(),
		BookCopyID: r.BookCopy().ID(),
		MemberID:   r.Member().ID(),
		ReservedAt: r.ReservedAt().Format(time.DateOnly),
		ExpiresAt:  r.ExpiresAt().Format(time.DateOnly),
		Status:     string(r.Status()),
	}
}

func MemberSummaryFromDomain(m *domain.Member) MemberSummary {
	loans := make([]Loan, 0, len(m.Loans()))
	for _, l := range m.Loans() {
		loans = append(loans, LoanFromDomain(l))
	}
	return MemberSummary{
		Member:           MemberFromDomain(m),
		ActiveLoans:      len(m.ActiveLoans()),
		OverdueLoans:     len(m.OverdueLoans()),
		TotalPenaltyDays: m.TotalPenaltyDays().Value(),
		EligibleForLoan:  m.IsEligibleForLoan(),
		Loans:            loans,
	}
}
