package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "u1", "master1", false, "taller-api-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, name, isAdmin, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "master1", name)
	assert.False(t, isAdmin)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, "u1", "admin", true, "taller-api-test", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(secret, "u1", "admin", true, "taller-api-test", 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParse_SinSubject(t *testing.T) {
	tok, err := Generate(secret, "", "x", false, "taller-api-test", 60)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "x", false, "", 60)
	assert.Error(t, err)
}
