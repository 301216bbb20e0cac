package reservation

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Ambiguous characters (0/O, 1/I) are excluded so codes survive being read
// aloud or retyped from a WhatsApp message.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// NewID returns a fresh reservation id.
func NewID() string {
	return uuid.NewString()
}

// NewCode returns a 6-character uppercase reservation code.
func NewCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.IntN(len(codeCharset))]
	}
	return string(b)
}
