// Package userdir manages the single shared file of registered users.
// Unlike the per-owner stores, all accounts live in one users.txt under
// the data root; email is the natural key, matched case-insensitively.
package userdir

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anoudmohamed/budget-manager/internal/record"
	"github.com/anoudmohamed/budget-manager/internal/store"
)

const fileName = "users.txt"

// VerifyResult is the outcome of a credential check.
type VerifyResult int

const (
	Matched VerifyResult = iota
	WrongPassword
	NotFound
)

func (r VerifyResult) String() string {
	switch r {
	case Matched:
		return "Matched"
	case WrongPassword:
		return "WrongPassword"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Directory reads and appends User records in the shared users file.
type Directory struct {
	path string
}

// New returns a Directory backed by users.txt under root.
func New(root string) *Directory {
	return &Directory{path: filepath.Join(root, fileName)}
}

// Exists reports whether any stored user has the given email,
// case-insensitively. A missing users file means no one is registered.
func (d *Directory) Exists(email string) (bool, error) {
	users, err := d.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Add appends a user record. The caller must have confirmed email
// uniqueness already; Add itself does not.
func (d *Directory) Add(u record.User) error {
	if err := store.AppendLine(d.path, record.Users.EncodeLine(u)); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// Verify scans the users file in order for the first record whose email
// matches case-insensitively and compares the candidate password against
// the stored bcrypt hash. The first matching email wins even if a later
// duplicate exists.
func (d *Directory) Verify(email, password string) (VerifyResult, error) {
	users, err := d.load()
	if err != nil {
		return NotFound, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return Matched, nil
		}
		return WrongPassword, nil
	}
	return NotFound, nil
}

func (d *Directory) load() ([]record.User, error) {
	return store.DecodeFile(d.path, record.Users)
}
