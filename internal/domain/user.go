package domain

import "strings"

type RoleType string

const (
	RoleTypeNormalUser RoleType = "NORMAL_USER"
	RoleTypeAdmin      RoleType = "ADMIN"
	RoleTypeSuperUser  RoleType = "SUPER_USER"
)

func (r RoleType) Valid() bool {
	switch r {
	case RoleTypeNormalUser, RoleTypeAdmin, RoleTypeSuperUser:
		return true
	}
	return false
}

// Role assigns a permission level to a user.
type Role struct {
	id       int64
	roleType RoleType
}

func NewRole(roleType RoleType) (*Role, error) {
	if !roleType.Valid() {
		return nil, validationf("unknown role type %q", roleType)
	}
	return &Role{roleType: roleType}, nil
}

func (r *Role) ID() int64          { return r.id }
func (r *Role) SetID(id int64)     { r.id = id }
func (r *Role) RoleType() RoleType { return r.roleType }

// User is a system account; a Member is the library-facing side of one.
type User struct {
	Lifecycle

	id           int64
	email        Email
	passwordHash string
	roles        []*Role
	active       bool
}

func NewUser(email, passwordHash string) (*User, error) {
	addr, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, validationf("user password hash must not be blank")
	}
	return &User{
		Lifecycle:    newLifecycle(),
		email:        addr,
		passwordHash: passwordHash,
		active:       true,
	}, nil
}

// RehydrateUser rebuilds a persisted account without re-running creation
// defaults.
func RehydrateUser(id int64, email, passwordHash string, roles []*Role, active bool, lc Lifecycle) (*User, error) {
	addr, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, validationf("user password hash must not be blank")
	}
	out := make([]*Role, len(roles))
	copy(out, roles)
	return &User{
		Lifecycle:    lc,
		id:           id,
		email:        addr,
		passwordHash: passwordHash,
		roles:        out,
		active:       active,
	}, nil
}

func (u *User) ID() int64            { return u.id }
func (u *User) SetID(id int64)       { u.id = id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Active() bool         { return u.active }

func (u *User) Roles() []*Role {
	out := make([]*Role, len(u.roles))
	copy(out, u.roles)
	return out
}

func (u *User) AddRole(r *Role) error {
	if r == nil {
		return validationf("role must not be nil")
	}
	for _, have := range u.roles {
		if have.roleType == r.roleType {
			return nil
		}
	}
	u.roles = append(u.roles, r)
	u.markUpdated()
	return nil
}

func (u *User) HasRole(roleType RoleType) bool {
	for _, r := range u.roles {
		if r.roleType == roleType {
			return true
		}
	}
	return false
}

func (u *User) ChangePasswordHash(hash string) error {
	if strings.TrimSpace(hash) == "" {
		return validationf("user password hash must not be blank")
	}
	u.passwordHash = hash
	u.markUpdated()
	return nil
}

func (u *User) Deactivate() {
	u.active = false
	u.markUpdated()
}

func (u *User) Activate() {
	u.active = true
	u.markUpdated()
}
