package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/repository"
)

// Repositories bundles the persistence ports the use cases depend on.
type Repositories struct {
	Category    repository.CategoryRepository
	Author      repository.AuthorRepository
	Library     repository.LibraryRepository
	Book        repository.BookRepository
	BookCopy    repository.BookCopyRepository
	Member      repository.MemberRepository
	Loan        repository.LoanRepository
	Reservation repository.ReservationRepository
	User        repository.UserRepository
	Audit       repository.AuditLogRepository
}

type Service struct {
	log      *zap.Logger
	repo     Repositories
	tx       repository.Transactor
	clock    Clock
	notifier Notifier
}

func NewService(repo Repositories, tx repository.Transactor, clock Clock, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		log:      log.Named("service"),
		repo:     repo,
		tx:       tx,
		clock:    clock,
		notifier: notifier,
	}
}

// audit writes an entry inside the current transaction. A malformed entry is
// a programming error; it fails the use case rather than passing silently.
func (s *Service) audit(ctx context.Context, action domain.AuditAction, entityType string, entityID int64, message string) error {
	return s.auditChange(ctx, action, entityType, entityID, message, "", "")
}

// auditChange is audit with before/after state snapshots for transitions.
func (s *Service) auditChange(ctx context.Context, action domain.AuditAction, entityType string, entityID int64, message, before, after string) error {
	entry, err := domain.NewAuditLog(domain.AuditLogConfig{
		PerformedBy:   actorID(ctx),
		Action:        action,
		EntityType:    entityType,
		EntityID:      fmt.Sprintf("%d", entityID),
		Timestamp:     s.clock.Now(),
		Success:       true,
		Message:       message,
		CorrelationID: uuid.NewString(),
		Before:        before,
		After:         after,
	})
	if err != nil {
		return err
	}
	_, err = s.repo.Audit.Record(ctx, entry)
	return err
}

func (s *Service) notify(ctx context.Context, member *domain.Member, subject, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyMember(ctx, member, subject, message); err != nil {
		s.log.Warn("notification failed",
			zap.Int64("member_id", member.ID()),
			zap.String("subject", subject),
			zap.Error(err))
	}
}
