package security

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// MakeSalt returns a fresh per-user salt. The current time is mixed with a
// uuid and random bytes so two calls never plausibly collide, then digested
// so the salt never echoes its inputs.
func MakeSalt() string {
	var entropy [16]byte
	rand.Read(entropy[:])
	seed := time.Now().UTC().String() + "--" + uuid.NewString() + "--" + hex.EncodeToString(entropy[:])
	return digest(seed)
}

// Hash is the deterministic one-way function of a salt and a plaintext
// password. The stored encrypted_password is always Hash(salt, plaintext)
// for the most recently accepted plaintext; the plaintext itself is never
// persisted.
func Hash(salt, plaintext string) string {
	return digest(salt + "--" + plaintext)
}

func digest(s string) string {
	sum := sha3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
