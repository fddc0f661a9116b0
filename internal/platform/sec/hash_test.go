// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// cheapParams keeps the property test fast; the construction is unchanged.
var cheapParams = sec.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

/*
TestArgon2Hasher_RoundTrip verifies hash format and positive verification.
*/
func TestArgon2Hasher_RoundTrip(t *testing.T) {
	hasher := sec.NewArgon2Hasher(cheapParams)

	hash, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, hash, "P@ssw0rd1")
	assert.True(t, hasher.Verify(hash, "P@ssw0rd1"))

	// Salted: hashing twice never yields the same string
	again, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

/*
TestArgon2Hasher_NoFalsePositives checks 1000 random wrong passwords against one hash.
*/
func TestArgon2Hasher_NoFalsePositives(t *testing.T) {
	hasher := sec.NewArgon2Hasher(cheapParams)
	const password = "P@ssw0rd1"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	buffer := make([]byte, 12)
	for i := 0; i < 1000; i++ {
		_, err := rand.Read(buffer)
		require.NoError(t, err)

		candidate := hex.EncodeToString(buffer)
		if candidate == password {
			continue
		}
		if hasher.Verify(hash, candidate) {
			t.Fatalf("false positive for candidate %q", candidate)
		}
	}
}

/*
TestArgon2Hasher_Malformed rejects hashes that cannot be decoded.
*/
func TestArgon2Hasher_Malformed(t *testing.T) {
	hasher := sec.NewArgon2Hasher(cheapParams)

	for _, malformed := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$a2V5",
	} {
		assert.NotPanics(t, func() {
			assert.False(t, hasher.Verify(malformed, "anything"), malformed)
		}, malformed)
	}
}

/*
TestArgon2Hasher_BcryptLegacy verifies that bcrypt hashes still authenticate.
*/
func TestArgon2Hasher_BcryptLegacy(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	hasher := sec.NewArgon2Hasher(cheapParams)
	assert.True(t, hasher.Verify(string(legacy), "legacy-pass"))
	assert.False(t, hasher.Verify(string(legacy), "legacy-pass2"))
}
