package test

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns an alphanumeric string whose length lies in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	out := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range out {
		out[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(out)
}
