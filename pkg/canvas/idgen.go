package canvas

import (
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 20
)

// IDGenerator produces identifiers for new entities.
type IDGenerator func() string

// NanoID returns a 20 character identifier drawn from lowercase letters and digits.
func NanoID() string {
	return gonanoid.MustGenerate(idAlphabet, idLength)
}

// SequentialIDs returns a deterministic generator yielding prefix1, prefix2, ...
// It is meant for tests and scripted sessions.
func SequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
