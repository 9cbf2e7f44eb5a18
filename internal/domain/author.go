package domain

import (
	"strings"
	"time"
)

// AuthorConfig is the plain input record for NewAuthor. Optional fields may
// stay zero.
type AuthorConfig struct {
	ID          int64
	FirstName   string
	LastName    string
	Nationality string
	DateOfBirth *time.Time
	Biography   string
	Website     string
	Email       string
	Affiliation string
}

// Author is a supporting reference entity for books.
type Author struct {
	Lifecycle

	id          int64
	firstName   string
	lastName    string
	nationality string
	dateOfBirth *time.Time
	biography   string
	website     string
	email       string
	affiliation string
}

func NewAuthor(cfg AuthorConfig) (*Author, error) {
	firstName := strings.TrimSpace(cfg.FirstName)
	lastName := strings.TrimSpace(cfg.LastName)
	nationality := strings.TrimSpace(cfg.Nationality)
	if firstName == "" {
		return nil, validationf("author first name must not be blank")
	}
	if lastName == "" {
		return nil, validationf("author last name must not be blank")
	}
	if nationality == "" {
		return nil, validationf("author nationality must not be blank")
	}
	if cfg.DateOfBirth != nil && cfg.DateOfBirth.After(time.Now()) {
		return nil, validationf("author date of birth must not be in the future")
	}
	email := strings.TrimSpace(cfg.Email)
	if email != "" {
		normalized, err := NewEmail(email)
		if err != nil {
			return nil, err
		}
		email = normalized.Value()
	}
	return &Author{
		Lifecycle:   newLifecycle(),
		id:          cfg.ID,
		firstName:   firstName,
		lastName:    lastName,
		nationality: nationality,
		dateOfBirth: cfg.DateOfBirth,
		biography:   cfg.Biography,
		website:     strings.TrimSpace(cfg.Website),
		email:       email,
		affiliation: strings.TrimSpace(cfg.Affiliation),
	}, nil
}

func (a *Author) ID() int64      { return a.id }
func (a *Author) SetID(id int64) { a.id = id }

func (a *Author) FirstName() string   { return a.firstName }
func (a *Author) LastName() string    { return a.lastName }
func (a *Author) Nationality() string { return a.nationality }
func (a *Author) Biography() string   { return a.biography }
func (a *Author) Website() string     { return a.website }
func (a *Author) Email() string       { return a.email }
func (a *Author) Affiliation() string { return a.affiliation }

func (a *Author) FullName() string {
	return a.firstName + " " + a.lastName
}

func (a *Author) DateOfBirth() *time.Time {
	if a.dateOfBirth == nil {
		return nil
	}
	t := *a.dateOfBirth
	return &t
}
