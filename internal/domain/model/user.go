package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
)

// User roles.
const (
	UserRoleAdmin    = "admin"
	UserRoleCustomer = "customer"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ---------------------------------------------------------------------------
// User aggregate root
// ---------------------------------------------------------------------------

// User is an immutable aggregate representing a registered account.
// Every mutation returns a new copy. The password is stored as a bcrypt hash
// produced by the application layer; the aggregate never sees plaintext.
type User struct {
	id           string
	name         string
	email        string
	passwordHash string
	role         string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewUser creates a new account and emits UserRegistered.
// The email is normalised to lower case.
func NewUser(name, email, passwordHash, role string, now time.Time) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return User{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if passwordHash == "" {
		return User{}, fmt.Errorf("%w: password hash is required", ErrInvalidInput)
	}
	if role != UserRoleAdmin && role != UserRoleCustomer {
		return User{}, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	id := uuid.New().String()
	u := User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}
	u.domainEvents = append(u.domainEvents, event.NewUserRegistered(id, email, role))
	return u, nil
}

// ReconstructUser rebuilds an aggregate from persistence without side-effects.
func ReconstructUser(
	id, name, email, passwordHash, role string,
	version int,
	createdAt, updatedAt time.Time,
) User {
	return User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (u User) ID() string                        { return u.id }
func (u User) Name() string                      { return u.name }
func (u User) Email() string                     { return u.email }
func (u User) PasswordHash() string              { return u.passwordHash }
func (u User) Role() string                      { return u.role }
func (u User) IsAdmin() bool                     { return u.role == UserRoleAdmin }
func (u User) Version() int                      { return u.version }
func (u User) CreatedAt() time.Time              { return u.createdAt }
func (u User) UpdatedAt() time.Time              { return u.updatedAt }
func (u User) DomainEvents() []event.DomainEvent { return u.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (u User) ClearEvents() User {
	next := u
	next.domainEvents = nil
	return next
}
