package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/keystore"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kid = "test-kid"

func newAuth(t *testing.T, issuer string) *auth.Auth {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	})

	ks := keystore.New()
	require.NoError(t, ks.Add(kid, privatePEM))

	return auth.New(auth.Config{
		Log:       logger.New(io.Discard, logger.LevelInfo, "TEST", nil),
		KeyLookup: ks,
		Issuer:    issuer,
		ActiveKID: kid,
	})
}

func TestGenerateAndAuthenticate(t *testing.T) {
	a := newAuth(t, "agenda")

	companyID := uuid.New()
	usr := userbus.User{
		ID:        uuid.New(),
		Role:      role.CompanyAdmin,
		CompanyID: &companyID,
		Enabled:   true,
	}

	token, err := a.GenerateToken(usr)
	require.NoError(t, err)

	claims, err := a.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	assert.Equal(t, usr.ID.String(), claims.Subject)
	assert.Equal(t, companyID.String(), claims.CompanyID)
	assert.Equal(t, role.CompanyAdmin.String(), claims.Role)
	assert.Equal(t, "agenda", claims.Issuer)
}

func TestGenerateToken_SuperAdminHasNoCompany(t *testing.T) {
	a := newAuth(t, "agenda")

	token, err := a.GenerateToken(userbus.User{ID: uuid.New(), Role: role.SuperAdmin})
	require.NoError(t, err)

	claims, err := a.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Empty(t, claims.CompanyID)
}

func TestAuthenticate_Rejects(t *testing.T) {
	a := newAuth(t, "agenda")
	other := newAuth(t, "someone-else")

	token, err := other.GenerateToken(userbus.User{ID: uuid.New(), Role: role.Professional})
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), token)
	assert.Error(t, err, "missing bearer prefix")

	_, err = a.Authenticate(context.Background(), "Bearer "+token)
	assert.Error(t, err, "signed by another key")

	_, err = a.Authenticate(context.Background(), "Bearer not.a.token")
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	a := newAuth(t, "agenda")
	ctx := context.Background()

	claims := auth.Claims{Role: role.Professional.String()}

	assert.NoError(t, a.Authorize(ctx, claims, role.CompanyAdmin, role.Professional))

	err := a.Authorize(ctx, claims, role.SuperAdmin)
	assert.True(t, errors.Is(err, auth.ErrForbidden))

	err = a.Authorize(ctx, claims)
	assert.True(t, errors.Is(err, auth.ErrForbidden))
}
