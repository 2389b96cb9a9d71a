// Package otp stores short-lived one-time codes keyed by email.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// generateCode returns a uniformly random six-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// matches compares codes numerically, ignoring surrounding spaces.
func matches(live, given string) bool {
	a, b := canonical(live), canonical(given)
	return a != "" && a == b
}

// canonical renders a code as its decimal value, or "" when it is not a number.
func canonical(code string) string {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || n < 0 {
		return ""
	}
	return strconv.Itoa(n)
}
