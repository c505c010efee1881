package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsianclinic/postop-api/internal/model"
)

func testPatient() *model.Patient {
	return &model.Patient{
		Base:       model.Base{ID: uuid.New()},
		NationalID: "0012345678",
		IsAdmin:    true,
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "s1", RefreshSecret: "s2"})
	p := testPatient()

	pair, err := svc.GenerateTokenPair(p)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := svc.ValidateAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)
	assert.Equal(t, p.NationalID, claims.NationalID)
	assert.True(t, claims.IsAdmin)

	claims, err = svc.ValidateRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)
}

func TestTokenUseIsEnforced(t *testing.T) {
	svc := NewJWTService(Config{Secret: "s1", RefreshSecret: "s2"})

	pair, err := svc.GenerateTokenPair(testPatient())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.Access)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(pair.Refresh)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "s1",
		RefreshSecret: "s2",
		AccessExpiry:  -time.Minute,
	})

	pair, err := svc.GenerateTokenPair(testPatient())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := NewJWTService(Config{Secret: "s1", RefreshSecret: "s2"})
	other := NewJWTService(Config{Secret: "different", RefreshSecret: "different2"})

	pair, err := svc.GenerateTokenPair(testPatient())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
