package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
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

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SeriesFingerprint identifies the exact observations a run was computed
// from. Two runs over bit-identical values share a fingerprint.
type SeriesFingerprint Hash

func (h SeriesFingerprint) String() string { return Hash(h).String() }

// ComputeSeriesFingerprint hashes the raw bit patterns of the values, so
// NaN payloads and signed zeros are distinguished.
func ComputeSeriesFingerprint(values []float64) SeriesFingerprint {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return SeriesFingerprint(NewHash(data))
}
