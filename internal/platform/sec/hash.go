// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor of newly stored passwords.
const passwordCost = bcrypt.DefaultCost

// HashPassword hashes a plain-text password for storage.
//
// Passwords longer than 72 bytes are rejected by bcrypt.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether plainTextPassword matches existingHash.
// A malformed hash never matches.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

var decoyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("rmc-decoy-password"), passwordCost)
	if err != nil {
		panic(fmt.Sprintf("sec: decoy hash: %v", err))
	}
	return hash
})

// BurnPasswordCheck spends the time of one password comparison.
//
// Login calls it for unknown emails so response times do not reveal which
// addresses are registered.
func BurnPasswordCheck(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plainTextPassword))
}
