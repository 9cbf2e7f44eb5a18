package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
)

// MarkOverdueLoans flips active loans past their due date to OVERDUE. One
// transaction per loan so a single failure does not abort the batch. Returns
// the number of loans flipped.
func (s *Service) MarkOverdueLoans(ctx context.Context) (int, error) {
	today := s.clock.Today()
	ids, err := s.repo.Loan.FindIDsActiveDueBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	var marked int
	for _, id := range ids {
		var overdue *domain.Loan
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			loan, err := s.repo.Loan.FindByID(ctx, id)
			if err != nil {
				return err
			}
			before := string(loan.Status())
			loan.MarkOverdueIfNeeded(today)
			if loan.Status() != domain.LoanStatusOverdue {
				return nil
			}
			if err := s.repo.Loan.Update(ctx, loan); err != nil {
				return err
			}
			marked++
			overdue = loan
			return s.auditChange(ctx, domain.AuditActionStatusChange, "loan", loan.ID(),
				"loan marked overdue", before, string(loan.Status()))
		})
		if err != nil {
			s.log.Warn("overdue sweep item failed", zap.Int64("loan_id", id), zap.Error(err))
			continue
		}
		// Notify only after the transaction committed.
		if overdue != nil {
			s.notify(ctx, overdue.Member(), "Loan overdue",
				fmt.Sprintf("Your loan was due on %s.", overdue.DueDate().Format(time.DateOnly)))
		}
	}
	return marked, nil
}

// ExpireReservations flips active reservations past their expiry date to
// EXPIRED. Returns the number of reservations expired.
func (s *Service) ExpireReservations(ctx context.Context) (int, error) {
	today := s.clock.Today()
	ids, err := s.repo.Reservation.FindIDsActiveExpiredBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	var expired int
	for _, id := range ids {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			reservation, err := s.repo.Reservation.FindByID(ctx, id)
			if err != nil {
				return err
			}
			before := string(reservation.Status())
			reservation.ExpireIfPast(today)
			if reservation.Status() != domain.ReservationStatusExpired {
				return nil
			}
			if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
				return err
			}
			expired++
			return s.auditChange(ctx, domain.AuditActionStatusChange, "reservation", reservation.ID(),
				"reservation expired", before, string(reservation.Status()))
		})
		if err != nil {
			s.log.Warn("expiry sweep item failed", zap.Int64("reservation_id", id), zap.Error(err))
		}
	}
	return expired, nil
}
