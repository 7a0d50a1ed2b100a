// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

var b64 = base64.RawStdEncoding

// dummyDigest is verified against when no user matches, so both login failures cost the same.
var dummyDigest = encode(make([]byte, saltLen), argon2.IDKey([]byte("dogial"), make([]byte, saltLen), argonTime, argonMemory, argonThreads, argonKeyLen), argonTime, argonMemory, argonThreads)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// HashPassword returns an encoded Argon2id digest of password with a fresh random salt:
//
//	$argon2id$v=19$m=65536,t=3,p=1$<salt>$<key>
//
// It panics if the system randomness source fails; the process cannot hash safely without it.
func HashPassword(password string) string {
	salt, err := RandBytes(saltLen)
	if err != nil {
		panic(fmt.Sprintf("crypto: read random salt: %v", err))
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return encode(salt, key, argonTime, argonMemory, argonThreads)
}

// VerifyPassword reports whether password matches the encoded digest.
// Malformed digests never match.
func VerifyPassword(password, digest string) bool {
	salt, want, t, m, p, ok := decode(digest)
	if !ok {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// DummyDigest returns a well-formed digest that matches no real password.
func DummyDigest() string { return dummyDigest }

func encode(salt, key []byte, t, m uint32, p uint8) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, m, t, p, b64.EncodeToString(salt), b64.EncodeToString(key))
}

func decode(digest string) (salt, key []byte, t, m uint32, p uint8, ok bool) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}
	var v int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &v); err != nil || v != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil || t == 0 || m == 0 || p == 0 {
		return nil, nil, 0, 0, 0, false
	}
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, false
	}
	key, err = b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}
	return salt, key, t, m, p, true
}
