package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okr_backend/internals/configs"
	"okr_backend/internals/features/org/users/model"
)

func init() {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
}

func TestAccessTokenCarriesIdentity(t *testing.T) {
	user := model.UserModel{
		ID:       uuid.New(),
		UserName: "alice",
		Role:     "member",
	}

	raw, err := GenerateAccessToken(user)
	require.NoError(t, err)

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["user_name"])
	assert.Equal(t, "member", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	raw, err := GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := ParseRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	// signed with the access secret, must not verify as a refresh token
	user := model.UserModel{ID: uuid.New(), UserName: "alice", Role: "member"}
	raw, err := GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = ParseRefreshToken(raw)
	assert.Error(t, err)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	_, err := ParseRefreshToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pw"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
