package object

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ContentAddress returns a content-addressed identifier (hex
// BLAKE2b-256) for raw bytes. No pipeline in this module calls it; the
// raw-hansard cache is keyed by sitting date.
func ContentAddress(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
