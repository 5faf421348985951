// Package auth orchestrates registration and login. Sign-up is a strict
// two-phase flow: BeginSignUp validates fields, confirms email
// uniqueness, and issues a one-time passcode; CompleteSignUp checks the
// response and persists the account. Any failure discards everything
// entered so far and the flow restarts from field entry.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anoudmohamed/budget-manager/internal/otp"
	"github.com/anoudmohamed/budget-manager/internal/record"
	"github.com/anoudmohamed/budget-manager/internal/userdir"
	"github.com/anoudmohamed/budget-manager/internal/validate"
)

var (
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("password must be 8-16 characters with an uppercase letter, a lowercase letter, and a digit")
	ErrInvalidPhone    = errors.New("phone must be '+' followed by 10-15 digits")
	ErrEmailTaken      = errors.New("email already registered, log in instead")
	ErrBadChallenge    = errors.New("no sign-up pending for this challenge")
	ErrCodeMismatch    = errors.New("one-time passcode did not match, sign-up canceled")
	ErrWrongPassword   = errors.New("wrong password")
	ErrUserNotFound    = errors.New("email not found")
)

// Manager gates access to the per-user stores.
type Manager struct {
	users *userdir.Directory
	codes *otp.Issuer

	// pending holds registrations that passed validation and uniqueness
	// and are waiting on their passcode, keyed by challenge ID.
	pending map[string]record.User
}

// NewManager returns a Manager over the given user directory and
// passcode issuer.
func NewManager(users *userdir.Directory, codes *otp.Issuer) *Manager {
	return &Manager{
		users:   users,
		codes:   codes,
		pending: make(map[string]record.User),
	}
}

// BeginSignUp validates the submitted fields, confirms the email is not
// already registered, and issues a passcode to it. The first failing
// check aborts the whole flow with a field-specific error; nothing is
// persisted and no passcode is issued. On success it returns the
// challenge ID for CompleteSignUp.
func (m *Manager) BeginSignUp(username, email, password, phone string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", ErrEmptyUsername
	}
	if !validate.Email(email) {
		return "", ErrInvalidEmail
	}
	if !validate.Password(password) {
		return "", ErrInvalidPassword
	}
	if !validate.Phone(phone) {
		return "", ErrInvalidPhone
	}

	exists, err := m.users.Exists(email)
	if err != nil {
		return "", fmt.Errorf("checking registered emails: %w", err)
	}
	if exists {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	challengeID, err := m.codes.Issue(email)
	if err != nil {
		return "", err
	}
	m.pending[challengeID] = record.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Phone:    phone,
	}
	return challengeID, nil
}

// CompleteSignUp checks the passcode response for a pending registration
// and persists the account on a match. The pending registration is
// discarded either way: a mismatch means the user restarts sign-up from
// field entry.
func (m *Manager) CompleteSignUp(challengeID, code string) error {
	user, ok := m.pending[challengeID]
	if !ok {
		return ErrBadChallenge
	}
	delete(m.pending, challengeID)

	if !m.codes.Verify(challengeID, code) {
		return ErrCodeMismatch
	}
	if err := m.users.Add(user); err != nil {
		return err
	}
	return nil
}

// Login checks the credentials against the user directory. A nil error
// means the session may start; ErrWrongPassword and ErrUserNotFound
// carry distinct diagnostics but the same control outcome.
func (m *Manager) Login(email, password string) error {
	result, err := m.users.Verify(email, password)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	switch result {
	case userdir.Matched:
		return nil
	case userdir.WrongPassword:
		return ErrWrongPassword
	default:
		return ErrUserNotFound
	}
}
