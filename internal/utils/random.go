package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// NewPid returns a short public identifier for a post. The first UUID block
// is enough entropy for URL slugs while staying readable.
func NewPid() string {
	id := uuid.NewString()
	return strings.SplitN(id, "-", 2)[0] + id[24:28]
}

const digits = "0123456789"

// GenerateRandomCode returns an n-digit numeric code for email verification
// and password resets.
func GenerateRandomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
