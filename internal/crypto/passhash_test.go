package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 64
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal, looks non-random", n)
	}
}

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	h := HashPassword("p@ssw0rd")
	if !strings.HasPrefix(h, "$argon2id$v=19$m=65536,t=3,p=1$") {
		t.Fatalf("unexpected digest format: %s", h)
	}
	if strings.Contains(h, "p@ssw0rd") {
		t.Fatalf("digest leaks plaintext")
	}
	if h == HashPassword("p@ssw0rd") {
		t.Fatalf("salt must differ between two hashes")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := "correct horse battery staple"
	hash := HashPassword(pw)

	if !VerifyPassword(pw, hash) {
		t.Fatalf("VerifyPassword: expected true for correct password")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("VerifyPassword: expected false for wrong password")
	}
	if VerifyPassword("", hash) {
		t.Fatalf("VerifyPassword: expected false for empty password")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	for _, d := range []string{
		"",
		"pw",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=3,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=3,p=1$!!$a2V5",
		"$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$",
	} {
		if VerifyPassword("pw", d) {
			t.Fatalf("malformed digest %q must not verify", d)
		}
	}
}

func TestDummyDigest_WellFormedButUnmatched(t *testing.T) {
	t.Parallel()

	d := DummyDigest()
	if _, _, _, _, _, ok := decode(d); !ok {
		t.Fatalf("dummy digest must decode: %s", d)
	}
	if VerifyPassword("", d) || VerifyPassword("pw", d) {
		t.Fatalf("dummy digest must not match ordinary passwords")
	}
}
