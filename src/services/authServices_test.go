package services

import (
	"context"
	"testing"

	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 1000

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	admin, err := NewCredential("admin", "s3cret!", "Admin", testIterations)
	require.NoError(t, err)
	viewer, err := NewCredential("viewer", "password", "", testIterations)
	require.NoError(t, err)

	svc, err := NewAuthService([]config.CredentialConfig{admin, viewer})
	require.NoError(t, err)
	return svc
}

func TestValidateCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	id, err := svc.ValidateCredentials(ctx, "admin", "s3cret!")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "admin", id.Username)
	assert.Equal(t, "Admin", id.Role)

	id, err = svc.ValidateCredentials(ctx, "  ADMIN ", "s3cret!")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "admin", id.Username)

	id, err = svc.ValidateCredentials(ctx, "viewer", "password")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, DefaultRole, id.Role)
}

func TestValidateCredentials_FailuresLookAlike(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	wrongPassword, errWrong := svc.ValidateCredentials(ctx, "admin", "nope")
	unknownUser, errUnknown := svc.ValidateCredentials(ctx, "mallory", "s3cret!")

	assert.Nil(t, wrongPassword)
	assert.Nil(t, unknownUser)
	assert.NoError(t, errWrong)
	assert.NoError(t, errUnknown)
}

func TestNewAuthService_DummyUsesConfiguredCost(t *testing.T) {
	svc := newTestAuthService(t)
	assert.Equal(t, testIterations, svc.dummy.iterations)
	assert.Len(t, svc.dummy.hash, hashSize)
	assert.Len(t, svc.dummy.salt, saltSize)

	cheap, err := NewCredential("cheap", "pw", "", 500)
	require.NoError(t, err)
	costly, err := NewCredential("costly", "pw", "", 2000)
	require.NoError(t, err)
	svc, err = NewAuthService([]config.CredentialConfig{cheap, costly})
	require.NoError(t, err)
	assert.Equal(t, 2000, svc.dummy.iterations)

	empty, err := NewAuthService(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultIterations, empty.dummy.iterations)
	assert.Len(t, empty.dummy.hash, hashSize)
}

func TestValidateCredentials_CancelledContext(t *testing.T) {
	svc := newTestAuthService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ValidateCredentials(ctx, "admin", "s3cret!")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAuthService_RejectsMalformedRecords(t *testing.T) {
	_, err := NewAuthService([]config.CredentialConfig{{Username: "a", Salt: "!!!", Hash: "AAAA"}})
	assert.ErrorContains(t, err, "invalid salt")

	_, err = NewAuthService([]config.CredentialConfig{{Username: "a", Salt: "AAAA", Hash: "%%%"}})
	assert.ErrorContains(t, err, "invalid hash")
}

func TestHashPassword_KnownRecord(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := HashPassword("s3cret!", salt, testIterations)

	svc, err := NewAuthService([]config.CredentialConfig{{
		Username:   "admin",
		Salt:       "MDEyMzQ1Njc4OWFiY2RlZg==",
		Hash:       hash,
		Iterations: testIterations,
	}})
	require.NoError(t, err)

	id, err := svc.ValidateCredentials(context.Background(), "admin", "s3cret!")
	require.NoError(t, err)
	assert.NotNil(t, id)
	assert.NotEqual(t, hash, HashPassword("s3cret!", salt, testIterations+1))
}
