package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(testSecret, "u-1", "USR-001", "admin", "factory-api", 5)
	require.NoError(t, err)

	userID, code, role, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "USR-001", code)
	assert.Equal(t, "admin", role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(testSecret, "u-1", "USR-001", "manager", "factory-api", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate(testSecret, "u-1", "USR-001", "manager", "factory-api", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "u-1", "USR-001", "admin", "factory-api", 5)
	assert.Error(t, err)
}
