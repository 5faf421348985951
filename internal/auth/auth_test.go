package auth

import (
	"errors"
	"testing"

	"github.com/anoudmohamed/budget-manager/internal/otp"
	"github.com/anoudmohamed/budget-manager/internal/userdir"
)

// captureDeliverer records issued codes so tests can replay or count them.
type captureDeliverer struct {
	codes []string
}

func (c *captureDeliverer) Deliver(_, code string) {
	c.codes = append(c.codes, code)
}

func newTestManager(t *testing.T) (*Manager, *userdir.Directory, *captureDeliverer) {
	t.Helper()
	users := userdir.New(t.TempDir())
	capture := &captureDeliverer{}
	return NewManager(users, otp.NewIssuer(capture)), users, capture
}

const (
	validEmail    = "anoud@example.com"
	validPassword = "Passw0rd"
	validPhone    = "+201234567890"
)

// register walks a full successful sign-up.
func register(t *testing.T, m *Manager, capture *captureDeliverer, email string) {
	t.Helper()
	id, err := m.BeginSignUp("anoud", email, validPassword, validPhone)
	if err != nil {
		t.Fatalf("BeginSignUp: %v", err)
	}
	code := capture.codes[len(capture.codes)-1]
	if err := m.CompleteSignUp(id, code); err != nil {
		t.Fatalf("CompleteSignUp: %v", err)
	}
}

func TestBeginSignUp_FieldValidation(t *testing.T) {
	m, _, capture := newTestManager(t)

	cases := []struct {
		name                             string
		username, email, password, phone string
		want                             error
	}{
		{"empty username", "  ", validEmail, validPassword, validPhone, ErrEmptyUsername},
		{"bad email", "anoud", "not-an-email", validPassword, validPhone, ErrInvalidEmail},
		{"bad password", "anoud", validEmail, "short", validPhone, ErrInvalidPassword},
		{"bad phone", "anoud", validEmail, validPassword, "12345", ErrInvalidPhone},
	}
	for _, c := range cases {
		_, err := m.BeginSignUp(c.username, c.email, c.password, c.phone)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: BeginSignUp err = %v, want %v", c.name, err, c.want)
		}
	}

	if len(capture.codes) != 0 {
		t.Errorf("%d passcodes issued for invalid fields, want 0", len(capture.codes))
	}
}

func TestSignUp_FullFlow(t *testing.T) {
	m, users, capture := newTestManager(t)

	register(t, m, capture, validEmail)

	exists, err := users.Exists(validEmail)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("registered email not found in user directory")
	}
	if err := m.Login(validEmail, validPassword); err != nil {
		t.Errorf("Login after sign-up: %v", err)
	}
}

func TestSignUp_StoresHashedPassword(t *testing.T) {
	m, users, capture := newTestManager(t)
	register(t, m, capture, validEmail)

	// Logging in with the stored file content as password must fail:
	// the raw secret is never persisted.
	if err := m.Login(validEmail, validPassword); err != nil {
		t.Fatalf("Login with real password: %v", err)
	}
	got, err := users.Verify(validEmail, validPassword+"x")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userdir.WrongPassword {
		t.Errorf("Verify with near-miss password = %s, want WrongPassword", got)
	}
}

func TestBeginSignUp_DuplicateEmailAbortsBeforeOTP(t *testing.T) {
	m, _, capture := newTestManager(t)
	register(t, m, capture, validEmail)
	issued := len(capture.codes)

	_, err := m.BeginSignUp("other", validEmail, validPassword, validPhone)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("BeginSignUp for taken email err = %v, want ErrEmailTaken", err)
	}
	if len(capture.codes) != issued {
		t.Error("a passcode was issued for a duplicate registration")
	}
}

func TestBeginSignUp_DuplicateEmailCaseInsensitive(t *testing.T) {
	m, _, capture := newTestManager(t)
	register(t, m, capture, validEmail)

	_, err := m.BeginSignUp("other", "ANOUD@EXAMPLE.COM", validPassword, validPhone)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("BeginSignUp with recased email err = %v, want ErrEmailTaken", err)
	}
}

func TestCompleteSignUp_WrongCodeDiscardsRegistration(t *testing.T) {
	m, users, capture := newTestManager(t)

	id, err := m.BeginSignUp("anoud", validEmail, validPassword, validPhone)
	if err != nil {
		t.Fatalf("BeginSignUp: %v", err)
	}

	if err := m.CompleteSignUp(id, "wrong!"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("CompleteSignUp with wrong code err = %v, want ErrCodeMismatch", err)
	}

	exists, err := users.Exists(validEmail)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("user persisted despite passcode mismatch")
	}

	// The pending registration is gone: even the right code is rejected now.
	code := capture.codes[0]
	if err := m.CompleteSignUp(id, code); !errors.Is(err, ErrBadChallenge) {
		t.Errorf("CompleteSignUp after abort err = %v, want ErrBadChallenge", err)
	}
}

func TestCompleteSignUp_UnknownChallenge(t *testing.T) {
	m, _, _ := newTestManager(t)
	if err := m.CompleteSignUp("no-such-id", "123456"); !errors.Is(err, ErrBadChallenge) {
		t.Errorf("CompleteSignUp err = %v, want ErrBadChallenge", err)
	}
}

func TestLogin_Failures(t *testing.T) {
	m, _, capture := newTestManager(t)
	register(t, m, capture, validEmail)

	if err := m.Login(validEmail, "WrongPass1"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Login with wrong password err = %v, want ErrWrongPassword", err)
	}
	if err := m.Login("stranger@example.com", validPassword); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Login with unknown email err = %v, want ErrUserNotFound", err)
	}
}
