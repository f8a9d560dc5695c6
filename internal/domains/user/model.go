package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
)

// Role controls what a user may do. ADMIN and EDITOR may publish; AUTHOR may
// only draft.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleAuthor Role = "AUTHOR"
)

// ParseRole accepts any casing of a known role name.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(value)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEditor:
		return RoleEditor, nil
	case RoleAuthor:
		return RoleAuthor, nil
	default:
		return "", content.NewValidationError(fmt.Sprintf("Invalid user role: %s", value))
	}
}

func (r Role) String() string { return string(r) }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanPublish reports whether the role may move content through REVIEW and
// beyond.
func (r Role) CanPublish() bool { return r == RoleAdmin || r == RoleEditor }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the aggregate root for accounts. Password always holds the bcrypt
// hash, never plaintext.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

// New creates an active user. Email is lowercased and trimmed; names are
// trimmed and must be at least 2 characters.
func New(id uuid.UUID, email, hashedPassword, firstName, lastName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if !emailPattern.MatchString(email) {
		return nil, content.NewValidationError("Invalid email format")
	}
	if len([]rune(firstName)) < 2 {
		return nil, content.NewValidationError("First name must be at least 2 characters")
	}
	if len([]rune(lastName)) < 2 {
		return nil, content.NewValidationError("Last name must be at least 2 characters")
	}
	if role == "" {
		role = RoleAuthor
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// State is the persisted field set.
type State struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

// Reconstitute rebuilds a user from storage.
func Reconstitute(s State) (*User, error) {
	role, err := ParseRole(s.Role)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:        s.ID,
		Email:     s.Email,
		Password:  s.Password,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Role:      role,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		LastLogin: s.LastLogin,
	}, nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UpdateProfile applies the non-nil fields with the same rules as creation.
func (u *User) UpdateProfile(firstName, lastName, email *string) error {
	if firstName != nil {
		trimmed := strings.TrimSpace(*firstName)
		if len([]rune(trimmed)) < 2 {
			return content.NewValidationError("First name must be at least 2 characters")
		}
		u.FirstName = trimmed
	}
	if lastName != nil {
		trimmed := strings.TrimSpace(*lastName)
		if len([]rune(trimmed)) < 2 {
			return content.NewValidationError("Last name must be at least 2 characters")
		}
		u.LastName = trimmed
	}
	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		if !emailPattern.MatchString(normalized) {
			return content.NewValidationError("Invalid email format")
		}
		u.Email = normalized
	}

	u.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdatePassword swaps in a new bcrypt hash.
func (u *User) UpdatePassword(hashed string) {
	u.Password = hashed
	u.UpdatedAt = time.Now().UTC()
}

// UpdateRole changes the user's role. Authorization is the caller's problem.
func (u *User) UpdateRole(role Role) {
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}

// RecordLogin stamps the last successful login.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLogin = &now
}

// CanPublishContent requires an active account with a publishing role.
func (u *User) CanPublishContent() bool {
	return u.IsActive && u.Role.CanPublish()
}
