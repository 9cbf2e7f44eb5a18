package domain

import "strings"

// Library owns a set of members and a physical inventory of book copies.
// Both collections are append-only and never exposed by reference.
type Library struct {
	Lifecycle

	id      int64
	name    string
	address string
	city    string

	members []*Member
	copies  []*BookCopy
}

func NewLibrary(name, address, city string) (*Library, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, validationf("library name must not be blank")
	}
	if address == "" {
		return nil, validationf("library address must not be blank")
	}
	return &Library{
		Lifecycle: newLifecycle(),
		name:      name,
		address:   address,
		city:      strings.TrimSpace(city),
	}, nil
}

// RehydrateLibrary rebuilds a persisted library with its stored timestamps.
func RehydrateLibrary(id int64, name, address, city string, lc Lifecycle) (*Library, error) {
	l, err := NewLibrary(name, address, city)
	if err != nil {
		return nil, err
	}
	l.id = id
	l.Lifecycle = lc
	return l, nil
}

func (l *Library) ID() int64       { return l.id }
func (l *Library) SetID(id int64)  { l.id = id }
func (l *Library) Name() string    { return l.name }
func (l *Library) Address() string { return l.address }
func (l *Library) City() string    { return l.city }

func (l *Library) AddMember(m *Member) error {
	if m == nil {
		return validationf("member must not be nil")
	}
	l.members = append(l.members, m)
	l.markUpdated()
	return nil
}

func (l *Library) AddBookCopy(c *BookCopy) error {
	if c == nil {
		return validationf("book copy must not be nil")
	}
	l.copies = append(l.copies, c)
	l.markUpdated()
	return nil
}

// Members returns a read-only snapshot.
func (l *Library) Members() []*Member {
	out := make([]*Member, len(l.members))
	copy(out, l.members)
	return out
}

// BookCopies returns a read-only snapshot.
func (l *Library) BookCopies() []*BookCopy {
	out := make([]*BookCopy, len(l.copies))
	copy(out, l.copies)
	return out
}

// Equal compares by case-insensitive name and address, the library business key.
func (l *Library) Equal(other *Library) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(l.name, other.name) && strings.EqualFold(l.address, other.address)
}
