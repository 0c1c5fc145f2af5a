package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// deliveryCodeLength is the number of digits in a delivery code.
const deliveryCodeLength = 4

// NewDeliveryCode generates a random numeric delivery code. The code is the
// secret shown to the customer and required to confirm the final hand-off.
func NewDeliveryCode() (string, error) {
	var b strings.Builder
	b.Grow(deliveryCodeLength)
	for i := 0; i < deliveryCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate delivery code: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// CodeMatches compares a stored delivery code with user input. The input is
// trimmed; the comparison itself is exact string equality. An empty stored
// code never matches.
func CodeMatches(stored, supplied string) bool {
	return stored != "" && stored == strings.TrimSpace(supplied)
}
