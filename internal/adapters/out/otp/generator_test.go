package otp_test

import (
	"bytes"
	"regexp"
	"testing"

	"marketplace/internal/adapters/out/otp"
	"marketplace/internal/core/domain/model/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestGenerator_Generate(t *testing.T) {
	g := otp.NewGenerator()

	for range 200 {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
		assert.NoError(t, verification.ValidateCode(code))
	}
}

func TestGenerator_ZeroPadded(t *testing.T) {
	g := otp.NewGeneratorFrom(bytes.NewReader(make([]byte, 16)))

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "000000", code)
}

func TestGenerator_ReaderFailure(t *testing.T) {
	g := otp.NewGeneratorFrom(bytes.NewReader(nil))

	_, err := g.Generate()
	require.Error(t, err)
}
