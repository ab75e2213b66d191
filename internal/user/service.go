package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validation failures carry the message shown to the user verbatim.
var (
	ErrFieldsRequired   = errors.New("Please fill all fields")
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
)

// IsInputError reports whether err came from registration input validation,
// as opposed to a duplicate identity or a storage failure.
func IsInputError(err error) bool {
	switch err {
	case ErrFieldsRequired, ErrInvalidEmail, ErrPasswordMismatch, ErrPasswordTooShort:
		return true
	}
	return false
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register validates the submitted fields, rejects duplicate identities and
// stores the user with a bcrypt hash. The plaintext password is never stored.
func (s *Service) Register(username, email, password, confirm string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" || confirm == "" {
		return User{}, ErrFieldsRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}
	if len(password) < 6 {
		return User{}, ErrPasswordTooShort
	}

	if _, err := s.repo.GetByUsernameOrEmail(username, email); err == nil {
		return User{}, ErrExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Authenticate looks the user up by username or email. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the response
// never hints which one it was.
func (s *Service) Authenticate(identifier, password string) (User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByIdentifier(identifier)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
