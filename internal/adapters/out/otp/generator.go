// Package otp generates delivery verification codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// Digits is the length of every generated code.
	Digits = 6

	codeSpace = 1_000_000
)

// Generator draws codes uniformly from 000000..999999.
type Generator struct {
	random io.Reader
}

// NewGenerator reads from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// NewGeneratorFrom reads from r. Tests use it to get fixed codes.
func NewGeneratorFrom(r io.Reader) *Generator {
	return &Generator{random: r}
}

// Generate returns a zero-padded code of Digits digits.
func (g *Generator) Generate() (string, error) {
	n, err := rand.Int(g.random, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", Digits, n.Int64()), nil
}
