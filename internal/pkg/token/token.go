package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// NewSessionID generates a cryptographically random 64-character hex token.
// It gates message creation, so it must not be guessable from the submission.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewNumericCode returns a code of exactly digits decimal digits, drawn
// uniformly from [10^(digits-1), 10^digits - 1]. No leading zeros.
func NewNumericCode(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("unsupported code length %d", digits)
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	high := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	span := new(big.Int).Sub(high, low)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return n.Add(n, low).String(), nil
}
