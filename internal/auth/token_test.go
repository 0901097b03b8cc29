package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "time-tracker-api"
)

func TestIssueAndVerify(t *testing.T) {
	raw, err := Issue(testSecret, testIssuer, "ann", true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := Verify(testSecret, testIssuer, raw)
	require.NoError(t, err)
	assert.Equal(t, "ann", id.Name)
	assert.True(t, id.Admin)
	assert.NotEmpty(t, id.TokenID)
}

func TestVerifyNonAdmin(t *testing.T) {
	raw, err := Issue(testSecret, testIssuer, "bob", false, time.Hour)
	require.NoError(t, err)

	id, err := Verify(testSecret, testIssuer, raw)
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Name)
	assert.False(t, id.Admin)
}

// Two tokens for the same name must still be distinguishable.
func TestIssueUniqueTokenID(t *testing.T) {
	a, err := Issue(testSecret, testIssuer, "ann", false, time.Hour)
	require.NoError(t, err)
	b, err := Issue(testSecret, testIssuer, "ann", false, time.Hour)
	require.NoError(t, err)

	ida, err := Verify(testSecret, testIssuer, a)
	require.NoError(t, err)
	idb, err := Verify(testSecret, testIssuer, b)
	require.NoError(t, err)
	assert.NotEqual(t, ida.TokenID, idb.TokenID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := Issue(testSecret, testIssuer, "ann", true, time.Hour)
	require.NoError(t, err)

	_, err = Verify("other-secret", testIssuer, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	raw, err := Issue(testSecret, "someone-else", "ann", true, time.Hour)
	require.NoError(t, err)

	_, err = Verify(testSecret, testIssuer, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	raw, err := Issue(testSecret, testIssuer, "ann", true, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(testSecret, testIssuer, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := Verify(testSecret, testIssuer, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Tokens using any method other than HMAC must not pass even when
// their payload looks right.
func TestVerifyRejectsNonHMAC(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "ann",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(testSecret, testIssuer, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ann",
		"iss": testIssuer,
	})
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Verify(testSecret, testIssuer, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
