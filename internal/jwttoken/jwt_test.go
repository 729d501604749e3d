package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/requestcontext"
)

func TestGenerateAndVerify(t *testing.T) {
	svc := New("test-signing-key", "brandgate", time.Hour)
	brandID := id.NewBrandID()
	adminID := id.NewAdminID()

	token, err := svc.Generate(requestcontext.PrincipalAdmin, adminID.String(), brandID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, requestcontext.PrincipalAdmin, principal.Kind)
	assert.Equal(t, adminID.String(), principal.PrincipalID)
	assert.Equal(t, brandID, principal.BrandID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New("test-signing-key", "brandgate", -time.Minute)
	token, err := svc.Generate(requestcontext.PrincipalMember, id.NewMemberID().String(), id.NewBrandID())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := New("key-one", "brandgate", time.Hour)
	verifier := New("key-two", "brandgate", time.Hour)

	token, err := issuer.Generate(requestcontext.PrincipalAdmin, id.NewAdminID().String(), id.NewBrandID())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := New("test-signing-key", "brandgate", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyToken(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestVerifyRejectsUnknownKind(t *testing.T) {
	svc := New("test-signing-key", "brandgate", time.Hour)
	token, err := svc.Generate(requestcontext.PrincipalKind("superuser"), id.NewAdminID().String(), id.NewBrandID())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
