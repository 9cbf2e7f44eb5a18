package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/model"
)

func (s *Service) RegisterMember(ctx context.Context, req model.RegisterMemberRequest) (model.Member, error) {
	member, err := domain.NewMember(domain.MemberConfig{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return model.Member{}, err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.LibraryID != 0 {
			if _, err := s.repo.Library.FindByID(ctx, req.LibraryID); err != nil {
				return err
			}
		}
		if _, err := s.repo.Member.Create(ctx, member, req.LibraryID); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "member", member.ID(), "member registered")
	})
	if err != nil {
		return model.Member{}, err
	}
	s.log.Info("member registered", zap.Int64("id", member.ID()))
	s.notify(ctx, member, "Welcome", "Your library membership is active.")
	return model.MemberFromDomain(member), nil
}

func (s *Service) UpdateMember(ctx context.Context, id int64, req model.UpdateMemberRequest) (model.Member, error) {
	var member *domain.Member
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		member, err = s.repo.Member.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := member.UpdateContact(req.FirstName, req.LastName, req.Email); err != nil {
			return err
		}
		if err := s.repo.Member.Update(ctx, member); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionUpdate, "member", member.ID(), "member contact updated")
	})
	if err != nil {
		return model.Member{}, err
	}
	return model.MemberFromDomain(member), nil
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Member.SoftDelete(ctx, id); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionSoftDelete, "member", id, "member removed")
	})
	if err != nil {
		return err
	}
	s.log.Info("member removed", zap.Int64("id", id))
	return nil
}

// GetMemberSummary assembles the member aggregate with its full loan history,
// so eligibility and accumulated penalties are computed over everything the
// member ever borrowed.
func (s *Service) GetMemberSummary(ctx context.Context, id int64) (model.MemberSummary, error) {
	member, err := s.repo.Member.FindByID(ctx, id)
	if err != nil {
		return model.MemberSummary{}, err
	}
	loans, err := s.repo.Loan.FindByMemberID(ctx, id)
	if err != nil {
		return model.MemberSummary{}, err
	}
	for _, loan := range loans {
		if err := member.AddLoan(loan); err != nil {
			return model.MemberSummary{}, err
		}
	}
	return model.MemberSummaryFromDomain(member), nil
}

func (s *Service) RegisterUser(ctx context.Context, req model.RegisterUserRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}
	user, err := domain.NewUser(req.Email, string(hash))
	if err != nil {
		return model.User{}, err
	}
	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{string(domain.RoleTypeNormalUser)}
	}
	for _, rt := range roles {
		role, err := domain.NewRole(domain.RoleType(rt))
		if err != nil {
			return model.User{}, err
		}
		if err := user.AddRole(role); err != nil {
			return model.User{}, err
		}
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "user", user.ID(), "user registered")
	})
	if err != nil {
		return model.User{}, err
	}
	return model.UserFromDomain(user), nil
}

func (s *Service) DeactivateUser(ctx context.Context, id int64) (model.User, error) {
	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repo.User.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := activeState(user.Active())
		user.Deactivate()
		if err := s.repo.User.Update(ctx, user); err != nil {
			return err
		}
		return s.auditChange(ctx, domain.AuditActionStatusChange, "user", user.ID(),
			"user deactivated", before, activeState(user.Active()))
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user deactivated", zap.Int64("id", id))
	return model.UserFromDomain(user), nil
}

// ChangeUserPassword rehashes the credential after checking the current one.
func (s *Service) ChangeUserPassword(ctx context.Context, req model.ChangeUserPasswordRequest) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.CurrentPassword)); err != nil {
			return errors.Wrap(domain.ErrValidation, "current password does not match")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := user.ChangePasswordHash(string(hash)); err != nil {
			return err
		}
		if err := s.repo.User.Update(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionUpdate, "user", user.ID(), "password changed")
	})
}

func activeState(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
