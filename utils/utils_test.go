package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateInviteCode()
		assert.True(t, strings.HasPrefix(code, "BASIC-"))
		assert.Len(t, code, len("BASIC-")+6)

		for _, char := range code[len("BASIC-"):] {
			assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(char))
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space should never collide
	assert.Greater(t, len(seen), 90)
}

func TestGenerateResetToken(t *testing.T) {
	token := GenerateResetToken()
	assert.Len(t, token, 64)
	assert.NotEqual(t, token, GenerateResetToken())
}

func TestGenerateSecurePassword(t *testing.T) {
	password := GenerateSecurePassword(12)
	assert.Len(t, password, 12)

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= '0' && char <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	assert.True(t, hasUpper)
	assert.True(t, hasLower)
	assert.True(t, hasDigit)
	assert.True(t, hasSpecial)
}
