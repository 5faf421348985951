package otp

import (
	"strconv"
	"testing"
)

// captureDeliverer records every delivery instead of sending anything.
type captureDeliverer struct {
	destinations []string
	codes        []string
}

func (c *captureDeliverer) Deliver(destination, code string) {
	c.destinations = append(c.destinations, destination)
	c.codes = append(c.codes, code)
}

func TestIssue_CodeShape(t *testing.T) {
	capture := &captureDeliverer{}
	issuer := NewIssuer(capture)

	for i := 0; i < 50; i++ {
		if _, err := issuer.Issue("someone@example.com"); err != nil {
			t.Fatalf("Issue: %v", err)
		}
	}

	for _, code := range capture.codes {
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Errorf("code %d outside [100000, 999999]", n)
		}
	}
}

func TestIssue_DeliversToDestination(t *testing.T) {
	capture := &captureDeliverer{}
	issuer := NewIssuer(capture)

	if _, err := issuer.Issue("anoud@example.com"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(capture.destinations) != 1 || capture.destinations[0] != "anoud@example.com" {
		t.Errorf("delivered to %v, want [anoud@example.com]", capture.destinations)
	}
}

func TestVerify_ExactlyOnce(t *testing.T) {
	capture := &captureDeliverer{}
	issuer := NewIssuer(capture)

	id, err := issuer.Issue("someone@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code := capture.codes[0]

	if !issuer.Verify(id, code) {
		t.Fatal("Verify with the issued code = false, want true")
	}
	if issuer.Verify(id, code) {
		t.Error("second Verify with the same code = true, want false (consumed)")
	}
}

func TestVerify_WrongResponseConsumesChallenge(t *testing.T) {
	capture := &captureDeliverer{}
	issuer := NewIssuer(capture)

	id, err := issuer.Issue("someone@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code := capture.codes[0]

	if issuer.Verify(id, "000000") {
		// 000000 is outside the issued range, so it can never match.
		t.Fatal("Verify with wrong response = true")
	}
	if issuer.Verify(id, code) {
		t.Error("Verify after a failed attempt = true, want false (one attempt per issuance)")
	}
}

func TestVerify_UnknownChallenge(t *testing.T) {
	issuer := NewIssuer(&captureDeliverer{})
	if issuer.Verify("no-such-id", "123456") {
		t.Error("Verify with unknown challenge ID = true, want false")
	}
}
