package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newPair(t *testing.T) (*Issuer, *Verifier) {
	t.Helper()
	s, err := NewSecret(testSecret)
	require.NoError(t, err)
	return NewIssuer("storegate", "backoffice", s, time.Hour), NewVerifier(s, "storegate", "backoffice")
}

func TestNewSecret_RejectsShort(t *testing.T) {
	_, err := NewSecret("short")
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestIssueAccess_WritesCanonicalTenantClaim(t *testing.T) {
	iss, ver := newPair(t)
	tenant := uuid.New()

	tok, exp, err := iss.IssueAccess(AccessClaims{
		Subject:     "user-1",
		TenantID:    tenant,
		Role:        "Cashier",
		Permissions: []string{"brands.read"},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ver.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, tenant.String(), claims[ClaimTenantID])
	assert.Equal(t, "Cashier", claims[ClaimRole])
	assert.Equal(t, []any{"brands.read"}, claims[ClaimPermissions])
	for _, legacy := range []string{"tenantId", "TenantId", "tenant", "tid"} {
		assert.NotContains(t, claims, legacy)
	}
}

func TestParse_Rejects(t *testing.T) {
	iss, ver := newPair(t)

	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := iss.IssueAccess(AccessClaims{Subject: "u"})
	require.NoError(t, err)
	_, err = ver.Parse(old)
	require.ErrorIs(t, err, ErrExpired)
	iss.now = time.Now

	other, err := NewSecret("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	forged, _, err := NewIssuer("storegate", "backoffice", other, time.Hour).IssueAccess(AccessClaims{Subject: "u"})
	require.NoError(t, err)
	_, err = ver.Parse(forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIss, _, err := NewIssuer("evil", "backoffice", iss.Secret, time.Hour).IssueAccess(AccessClaims{Subject: "u"})
	require.NoError(t, err)
	_, err = ver.Parse(wrongIss)
	require.ErrorIs(t, err, ErrInvalidIssuer)

	none := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, jwtv5.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ver.Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ver.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
