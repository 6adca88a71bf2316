package random

import (
	"crypto/rand"
)

func RandomString(stringLength int) (string, error) {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	bytes := make([]byte, stringLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Run through bytes; replacing each with the equivalent random char.
	for i, b := range bytes {
		bytes[i] = letters[b%byte(len(letters))]
	}
	return string(bytes), nil
}
