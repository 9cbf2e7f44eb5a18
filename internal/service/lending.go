package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/errs"
	"github.com/jikkosoft/library-service/internal/model"
)

// loadMemberWithLoans rebuilds the member aggregate for eligibility checks.
func (s *Service) loadMemberWithLoans(ctx context.Context, id int64) (*domain.Member, error) {
	member, err := s.repo.Member.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.Loan.FindByMemberID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		if err := member.AddLoan(loan); err != nil {
			return nil, err
		}
	}
	return member, nil
}

// newLoanFor creates the loan and persists the side effect on the copy. The
// loan constructor owns the AVAILABLE -> ON_LOAN transition.
func (s *Service) newLoanFor(ctx context.Context, member *domain.Member, bookCopy *domain.BookCopy) (*domain.Loan, error) {
	today := s.clock.Today()
	dueDate := today.AddDate(0, 0, bookCopy.Book().Category().MaxLoanDays())
	loan, err := domain.NewLoan(domain.LoanConfig{
		BookCopy: bookCopy,
		Member:   member,
		LoanDate: today,
		DueDate:  dueDate,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Loan.Create(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.repo.BookCopy.Update(ctx, bookCopy); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *Service) BorrowBook(ctx context.Context, req model.BorrowBookRequest) (model.Loan, error) {
	var loan *domain.Loan
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.loadMemberWithLoans(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if !member.IsEligibleForLoan() {
			return errs.ErrNotEligible
		}
		bookCopy, err := s.repo.BookCopy.FindByID(ctx, req.BookCopyID)
		if err != nil {
			return err
		}
		loan, err = s.newLoanFor(ctx, member, bookCopy)
		if err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionLoanCreated, "loan", loan.ID(), "book borrowed")
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("loan created",
		zap.Int64("loan_id", loan.ID()),
		zap.Int64("member_id", req.MemberID),
		zap.Int64("book_copy_id", req.BookCopyID))
	s.notify(ctx, loan.Member(), "Book borrowed",
		fmt.Sprintf("Due back on %s.", loan.DueDate().Format(time.DateOnly)))
	return model.LoanFromDomain(loan), nil
}

func (s *Service) ReturnBook(ctx context.Context, loanID int64, req model.ReturnBookRequest) (model.Loan, error) {
	var loan *domain.Loan
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		loan, err = s.repo.Loan.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		before := string(loan.Status())
		if err := loan.Return(req.ReturnDate.Time); err != nil {
			return err
		}
		if err := s.repo.Loan.Update(ctx, loan); err != nil {
			return err
		}
		if err := s.repo.BookCopy.Update(ctx, loan.BookCopy()); err != nil {
			return err
		}
		msg := "book returned"
		if penalty := loan.CalculatePenaltyDays(); penalty.Value() > 0 {
			msg = fmt.Sprintf("book returned late, %d penalty days", penalty.Value())
		}
		return s.auditChange(ctx, domain.AuditActionLoanReturned, "loan", loan.ID(),
			msg, before, string(loan.Status()))
	})
	if err != nil {
		return model.Loan{}, err
	}
	if penalty := loan.CalculatePenaltyDays(); penalty.Value() > 0 {
		s.notify(ctx, loan.Member(), "Late return",
			fmt.Sprintf("You accumulated %d penalty days.", penalty.Value()))
	}
	return model.LoanFromDomain(loan), nil
}

func (s *Service) ReserveBook(ctx context.Context, req model.ReserveBookRequest) (model.Reservation, error) {
	var reservation *domain.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.repo.Member.FindByID(ctx, req.MemberID)
		if err != nil {
			return err
		}
		bookCopy, err := s.repo.BookCopy.FindByID(ctx, req.BookCopyID)
		if err != nil {
			return err
		}
		reservation, err = domain.NewReservation(domain.ReservationConfig{
			BookCopy:   bookCopy,
			Member:     member,
			ReservedAt: s.clock.Today(),
			ExpiresAt:  req.ExpiresAt.Time,
		})
		if err != nil {
			return err
		}
		if _, err := s.repo.Reservation.Create(ctx, reservation); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionReservationPlaced, "reservation", reservation.ID(), "reservation placed")
	})
	if err != nil {
		return model.Reservation{}, err
	}
	s.notify(ctx, reservation.Member(), "Reservation placed",
		fmt.Sprintf("Held until %s.", reservation.ExpiresAt().Format(time.DateOnly)))
	return model.ReservationFromDomain(reservation), nil
}

func (s *Service) CancelReservation(ctx context.Context, id int64) (model.Reservation, error) {
	var reservation *domain.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		reservation, err = s.repo.Reservation.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := string(reservation.Status())
		if err := reservation.Cancel(); err != nil {
			return err
		}
		if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
			return err
		}
		return s.auditChange(ctx, domain.AuditActionReservationCancelled, "reservation", reservation.ID(),
			"reservation cancelled", before, string(reservation.Status()))
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return model.ReservationFromDomain(reservation), nil
}

// FulfillReservation converts an active reservation into a loan. The
// reservation never touched the copy's status, so the loan constructor still
// finds it AVAILABLE.
func (s *Service) FulfillReservation(ctx context.Context, id int64) (model.Loan, error) {
	var loan *domain.Loan
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		reservation, err := s.repo.Reservation.FindByID(ctx, id)
		if err != nil {
			return err
		}
		member, err := s.loadMemberWithLoans(ctx, reservation.Member().ID())
		if err != nil {
			return err
		}
		if !member.IsEligibleForLoan() {
			return errs.ErrNotEligible
		}
		before := string(reservation.Status())
		if err := reservation.MarkFulfilled(); err != nil {
			return err
		}
		if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
			return err
		}
		loan, err = s.newLoanFor(ctx, member, reservation.BookCopy())
		if err != nil {
			return err
		}
		return s.auditChange(ctx, domain.AuditActionReservationFulfilled, "reservation", reservation.ID(),
			"reservation fulfilled", before, string(reservation.Status()))
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.notify(ctx, loan.Member(), "Reservation fulfilled",
		fmt.Sprintf("Due back on %s.", loan.DueDate().Format(time.DateOnly)))
	return model.LoanFromDomain(loan), nil
}
