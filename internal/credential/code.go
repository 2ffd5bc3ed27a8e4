package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var codeSpan = big.NewInt(900000)

// NewCode returns a random six-digit code between 100000 and 999999.
// The code is typed by hand from the email, so it stays short and numeric.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
