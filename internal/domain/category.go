package domain

import "strings"

// Category holds the loan policy applied to its books: how long a copy may
// stay out and how many penalty days accrue per overdue day. Immutable after
// construction.
type Category struct {
	id            int64
	name          string
	maxLoanDays   int
	penaltyPerDay int
}

func NewCategory(name string, maxLoanDays, penaltyPerDay int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("category name must not be blank")
	}
	if maxLoanDays <= 0 {
		return nil, validationf("category max loan days must be positive, got %d", maxLoanDays)
	}
	if penaltyPerDay < 0 {
		return nil, validationf("category penalty per day must not be negative, got %d", penaltyPerDay)
	}
	return &Category{name: name, maxLoanDays: maxLoanDays, penaltyPerDay: penaltyPerDay}, nil
}

// RehydrateCategory rebuilds a persisted category.
func RehydrateCategory(id int64, name string, maxLoanDays, penaltyPerDay int) (*Category, error) {
	c, err := NewCategory(name, maxLoanDays, penaltyPerDay)
	if err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}

func (c *Category) ID() int64          { return c.id }
func (c *Category) SetID(id int64)     { c.id = id }
func (c *Category) Name() string       { return c.name }
func (c *Category) MaxLoanDays() int   { return c.maxLoanDays }
func (c *Category) PenaltyPerDay() int { return c.penaltyPerDay }

// Equal compares by case-insensitive name, the category business key.
func (c *Category) Equal(other *Category) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(c.name, other.name)
}
