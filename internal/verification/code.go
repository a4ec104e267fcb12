// Package verification generates the one-time email codes used to prove
// control of a registered address.
package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// codeSpan keeps generated codes in the 100000-999999 range: always six
// digits, never a leading zero. Clients depend on this exact range.
const codeSpan = 900000

// NewCode draws a six-digit numeric code and computes its expiry from now.
func NewCode(ttl time.Duration) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate verification code: %w", err)
	}
	code := strconv.FormatInt(100000+n.Int64(), 10)
	return code, time.Now().UTC().Add(ttl), nil
}
