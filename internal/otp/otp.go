// Package otp issues and checks one-time passcodes for sign-up
// confirmation. Issuing and verifying are two explicit calls keyed by a
// challenge ID, so any transport can drive the exchange without assuming
// a blocking terminal read.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// Codes are six digits, drawn uniformly from [100000, 999999].
const (
	codeMin  = 100000
	codeSpan = 900000
)

// Deliverer sends an issued code to its destination. Delivery is
// fire-and-forget; issuance does not wait for confirmation.
type Deliverer interface {
	Deliver(destination, code string)
}

// Issuer generates passcodes and tracks them until verified. Not safe
// for concurrent use; the tracker is a single-session tool.
type Issuer struct {
	deliver Deliverer
	pending map[string]string // challenge ID -> code
}

// NewIssuer returns an Issuer that delivers codes through d.
func NewIssuer(d Deliverer) *Issuer {
	return &Issuer{
		deliver: d,
		pending: make(map[string]string),
	}
}

// Issue generates a fresh code, delivers it to destination, and returns
// the challenge ID the response must be submitted against.
func (i *Issuer) Issue(destination string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generating passcode: %w", err)
	}
	code := strconv.FormatInt(codeMin+n.Int64(), 10)

	id := uuid.NewString()
	i.pending[id] = code
	i.deliver.Deliver(destination, code)
	return id, nil
}

// Verify reports whether response exactly matches the code issued for
// challengeID. The challenge is consumed on the first call regardless of
// outcome: one attempt per issuance, no expiry, no retry.
func (i *Issuer) Verify(challengeID, response string) bool {
	code, ok := i.pending[challengeID]
	if !ok {
		return false
	}
	delete(i.pending, challengeID)
	return response == code
}
