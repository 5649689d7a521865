package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	digits     = "0123456789"
)

// RandomString returns n characters drawn uniformly from [a-z0-9].
func RandomString(n int) string {
	return randomFrom(lowerAlnum, n)
}

// RandomDigits returns n decimal digits. Resource identifiers are built from
// a type prefix and random digits, e.g. "cnt3471963".
func RandomDigits(n int) string {
	return randomFrom(digits, n)
}

func randomFrom(alphabet string, n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
