package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, used in ETags and log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeInputHash fingerprints the inputs of a run. Parts are hashed in the
// order given; factor order is significant because it fixes column order.
func ComputeInputHash(parts ...interface{}) Hash {
	var data strings.Builder
	for _, p := range parts {
		data.WriteString(fmt.Sprintf("%v", p))
		data.WriteByte(0x1f)
	}
	return NewHash([]byte(data.String()))
}
