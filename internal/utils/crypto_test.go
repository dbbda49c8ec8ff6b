// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	assert.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]+$`), token)

	other, err := GenerateResetToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashString(t *testing.T) {
	hash := HashString("secret-token")
	assert.Len(t, hash, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), hash)

	// Same input, same hash; different input, different hash.
	assert.Equal(t, hash, HashString("secret-token"))
	assert.NotEqual(t, hash, HashString("other-token"))
}
