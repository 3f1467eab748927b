// Package auth manages the local learner directory. There are no passwords:
// a username and matching email are enough to sign in on this device.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/store"
)

// Errors carry the message shown to the learner.
var (
	ErrMissingFields = errors.New("Please fill in all fields")
	ErrInvalidEmail  = errors.New("Please enter a valid email address")
	ErrUsernameTaken = errors.New("Username already exists")
	ErrUnknownUser   = errors.New("Username not found")
	ErrEmailMismatch = errors.New("Invalid email for this user")
	ErrUsernameInUse = errors.New("Please choose a different username")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials is what the sign-in form submits.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,simple_email"`
}

// User is a signed-in learner.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service registers and signs in learners.
type Service struct {
	users    store.UserRepo
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// NewService creates an auth service backed by users.
func NewService(users store.UserRepo, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	// Anything shaped like a@b.c is accepted.
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Service{users: users, validate: v, logger: logger.WithField("component", "auth")}
}

// Validate trims c in place and checks the form fields.
func (s *Service) Validate(c *Credentials) error {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.TrimSpace(c.Email)

	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidEmail
}

// Register creates a new learner and signs them in.
func (s *Service) Register(ctx context.Context, c Credentials) (*User, error) {
	if err := s.Validate(&c); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, c.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	u := &store.User{Username: c.Username, Email: c.Email}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register %q: %w", c.Username, err)
	}
	s.logger.WithField("user", u.Username).Info("registered")
	return fromRow(u), nil
}

// Login signs in an existing learner. The email is compared
// case-insensitively; the username is not.
func (s *Service) Login(ctx context.Context, c Credentials) (*User, error) {
	if err := s.Validate(&c); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, c.Username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !strings.EqualFold(u.Email, c.Email) {
		return nil, ErrEmailMismatch
	}
	s.logger.WithField("user", u.Username).Info("signed in")
	return fromRow(u), nil
}

// Available reports whether username can be registered. A blank name is
// never available.
func (s *Service) Available(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}
	_, err := s.users.Get(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

// Lookup returns a registered learner, or ErrUnknownUser.
func (s *Service) Lookup(ctx context.Context, username string) (*User, error) {
	u, err := s.users.Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return fromRow(u), nil
}

// List returns every registered learner.
func (s *Service) List(ctx context.Context) ([]User, error) {
	rows, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, len(rows))
	for i := range rows {
		out[i] = *fromRow(&rows[i])
	}
	return out, nil
}

// IsUserError reports whether err is one of the messages meant for the
// learner rather than an internal failure.
func IsUserError(err error) bool {
	for _, e := range []error{ErrMissingFields, ErrInvalidEmail, ErrUsernameTaken, ErrUnknownUser, ErrEmailMismatch, ErrUsernameInUse} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func fromRow(u *store.User) *User {
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Session holds the signed-in learner of an interactive client.
type Session struct {
	user *User
}

// SignIn makes u the current learner.
func (s *Session) SignIn(u *User) { s.user = u }

// Logout forgets the current learner.
func (s *Session) Logout() { s.user = nil }

// Current returns the signed-in learner, or nil.
func (s *Session) Current() *User { return s.user }
