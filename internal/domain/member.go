package domain

import "strings"

// MemberConfig is the plain input record for NewMember.
type MemberConfig struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// Member is a user's library membership. It owns the loan history
// (append-only) and derives penalty and eligibility from it; penalty is never
// stored on the member directly.
type Member struct {
	Lifecycle

	id        int64
	firstName string
	lastName  string
	email     Email
	active    bool
	loans     []*Loan
}

func NewMember(cfg MemberConfig) (*Member, error) {
	firstName := strings.TrimSpace(cfg.FirstName)
	lastName := strings.TrimSpace(cfg.LastName)
	if firstName == "" {
		return nil, validationf("member first name must not be blank")
	}
	if lastName == "" {
		return nil, validationf("member last name must not be blank")
	}
	email, err := NewEmail(cfg.Email)
	if err != nil {
		return nil, err
	}
	return &Member{
		Lifecycle: newLifecycle(),
		id:        cfg.ID,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		active:    true,
	}, nil
}

// RehydrateMember rebuilds a persisted member; loans are attached separately
// via AddLoan.
func RehydrateMember(cfg MemberConfig, active bool, lc Lifecycle) (*Member, error) {
	m, err := NewMember(cfg)
	if err != nil {
		return nil, err
	}
	m.active = active
	m.Lifecycle = lc
	return m, nil
}

func (m *Member) ID() int64         { return m.id }
func (m *Member) SetID(id int64)    { m.id = id }
func (m *Member) FirstName() string { return m.firstName }
func (m *Member) LastName() string  { return m.lastName }
func (m *Member) Email() Email      { return m.email }
func (m *Member) Active() bool      { return m.active }

func (m *Member) FullName() string {
	return m.firstName + " " + m.lastName
}

// UpdateContact replaces the member's name and email under the same rules as
// registration.
func (m *Member) UpdateContact(firstName, lastName, email string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return validationf("member first name must not be blank")
	}
	if lastName == "" {
		return validationf("member last name must not be blank")
	}
	addr, err := NewEmail(email)
	if err != nil {
		return err
	}
	m.firstName = firstName
	m.lastName = lastName
	m.email = addr
	m.markUpdated()
	return nil
}

func (m *Member) Deactivate() {
	m.active = false
	m.markUpdated()
}

func (m *Member) Activate() {
	m.active = true
	m.markUpdated()
}

// AddLoan appends to the member's loan history. Loans are never removed.
func (m *Member) AddLoan(loan *Loan) error {
	if loan == nil {
		return validationf("loan must not be nil")
	}
	m.loans = append(m.loans, loan)
	m.markUpdated()
	return nil
}

// Loans returns a read-only snapshot of the full history.
func (m *Member) Loans() []*Loan {
	out := make([]*Loan, len(m.loans))
	copy(out, m.loans)
	return out
}

func (m *Member) ActiveLoans() []*Loan {
	return m.loansByStatus(LoanStatusActive)
}

func (m *Member) OverdueLoans() []*Loan {
	return m.loansByStatus(LoanStatusOverdue)
}

func (m *Member) loansByStatus(status LoanStatus) []*Loan {
	var out []*Loan
	for _, l := range m.loans {
		if l.Status() == status {
			out = append(out, l)
		}
	}
	return out
}

func (m *Member) HasOverdueLoans() bool {
	for _, l := range m.loans {
		if l.Status() == LoanStatusOverdue {
			return true
		}
	}
	return false
}

// TotalPenaltyDays sums each loan's own penalty, priced by that loan's
// category.
func (m *Member) TotalPenaltyDays() PenaltyDays {
	var total PenaltyDays
	for _, l := range m.loans {
		total = total.Add(l.CalculatePenaltyDays())
	}
	return total
}

// IsEligibleForLoan is the borrowing policy: an inactive member, any overdue
// loan, or any accumulated penalty blocks a new loan.
func (m *Member) IsEligibleForLoan() bool {
	return m.active && !m.HasOverdueLoans() && m.TotalPenaltyDays().Value() == 0
}
