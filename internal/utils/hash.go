package utils

import (
    "encoding/hex"

    "golang.org/x/crypto/blake2b"
)

// HashKey returns the hex encoded BLAKE2b-256 digest of s.  It keeps
// cache keys short and uniform whatever the request path and query.
func HashKey(s string) string {
    sum := blake2b.Sum256([]byte(s))
    return hex.EncodeToString(sum[:])
}
