package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"math/big"
)

const inviteCodePrefix = "BASIC-"
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

// GenerateInviteCode generates an invite code in the form BASIC-XXXXXX where
// the suffix is drawn from a 36-symbol alphabet. Codes are generated with
// crypto/rand so they cannot be guessed.
func GenerateInviteCode() string {
	code := inviteCodePrefix
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Printf("Error generating invite code: %v", err)
			return ""
		}
		code += string(inviteCodeAlphabet[n.Int64()])
	}
	return code
}

// GenerateResetToken generates a 32-byte hex-encoded password reset token
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Error generating reset token: %v", err)
		return ""
	}
	return hex.EncodeToString(buf)
}

// GenerateSecurePassword generates a temporary password for admin accounts
// with at least one uppercase, lowercase, digit and special character.
func GenerateSecurePassword(length int) string {
	const uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const lowercase = "abcdefghijklmnopqrstuvwxyz"
	const numbers = "0123456789"
	const special = "@#$%&*!"
	const allChars = uppercase + lowercase + numbers + special

	if length < 4 {
		length = 12
	}

	pick := func(set string) byte {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return set[0]
		}
		return set[n.Int64()]
	}

	password := make([]byte, 0, length)
	password = append(password, pick(uppercase), pick(lowercase), pick(numbers), pick(special))
	for i := len(password); i < length; i++ {
		password = append(password, pick(allChars))
	}

	// Shuffle so the mandatory characters are not always at the front
	for i := len(password) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			continue
		}
		j := n.Int64()
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}
