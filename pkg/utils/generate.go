package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Reservation codes are public identifiers printed on tickets, so they
// come from crypto/rand, not math/rand.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateReservationCode returns an uppercase alphanumeric code of the
// given length. Uniqueness is the caller's problem.
func GenerateReservationCode(length int) string {
	if length <= 0 {
		length = 8
	}

	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to the first symbol rather than panic.
			code[i] = codeAlphabet[0]
			continue
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code)
}
