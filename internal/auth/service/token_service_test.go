package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name           string
		accessSecret   string
		refreshSecret  string
		accessMinutes  int
		refreshMinutes int
	}{
		{
			name:           "valid parameters",
			accessSecret:   "access-secret-key",
			refreshSecret:  "refresh-secret-key",
			accessMinutes:  15,
			refreshMinutes: 1440,
		},
		{
			name:           "empty secrets",
			accessSecret:   "",
			refreshSecret:  "",
			accessMinutes:  30,
			refreshMinutes: 2880,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(tt.accessSecret, tt.refreshSecret, tt.accessMinutes, tt.refreshMinutes)

			assert.NotNil(t, ts)
			assert.Equal(t, tt.accessSecret, ts.AccessTokenSecret)
			assert.Equal(t, tt.refreshSecret, ts.RefreshTokenSecret)
			assert.Equal(t, time.Duration(tt.accessMinutes)*time.Minute, ts.AccessTokenExpiry)
			assert.Equal(t, time.Duration(tt.refreshMinutes)*time.Minute, ts.RefreshTokenExpiry)
		})
	}
}

func TestTokenService_Generate(t *testing.T) {
	tests := []struct {
		name           string
		accessSecret   string
		refreshSecret  string
		accessMinutes  int
		refreshMinutes int
		userID         string
		email          string
		userType       string
	}{
		{
			name:           "successful token generation",
			accessSecret:   "test-access-secret-key-123",
			refreshSecret:  "test-refresh-secret-key-456",
			accessMinutes:  15,
			refreshMinutes: 1440,
			userID:         "user-123",
			email:          "test@example.com",
			userType:       "CLIENT",
		},
		{
			name:           "successful token generation for admin",
			accessSecret:   "test-access-secret-key-123",
			refreshSecret:  "test-refresh-secret-key-456",
			accessMinutes:  30,
			refreshMinutes: 2880,
			userID:         "admin-456",
			email:          "admin@example.com",
			userType:       "ADMIN",
		},
		{
			name:           "empty user data",
			accessSecret:   "test-access-secret-key-123",
			refreshSecret:  "test-refresh-secret-key-456",
			accessMinutes:  15,
			refreshMinutes: 1440,
			userID:         "",
			email:          "",
			userType:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(tt.accessSecret, tt.refreshSecret, tt.accessMinutes, tt.refreshMinutes)

			beforeGenerate := time.Now()
			accessToken, refreshToken, expiryTime, err := ts.Generate(tt.userID, tt.email, tt.userType)
			afterGenerate := time.Now()

			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
			assert.False(t, expiryTime.IsZero())

			// Verify expiry time is within expected range
			expectedExpiry := beforeGenerate.Add(ts.AccessTokenExpiry)
			assert.True(t, expiryTime.After(expectedExpiry.Add(-time.Second)))
			assert.True(t, expiryTime.Before(afterGenerate.Add(ts.AccessTokenExpiry).Add(time.Second)))

			// Verify access token claims
			accessClaims := &JWTCustomClaims{}
			accessTokenParsed, err := jwt.ParseWithClaims(accessToken, accessClaims, func(token *jwt.Token) (interface{}, error) {
				return []byte(tt.accessSecret), nil
			})
			require.NoError(t, err)
			assert.True(t, accessTokenParsed.Valid)
			assert.Equal(t, tt.userID, accessClaims.UserID)
			assert.Equal(t, tt.email, accessClaims.Email)
			assert.Equal(t, tt.userType, accessClaims.Type)

			// Verify refresh token claims
			refreshClaims := &JWTCustomClaims{}
			refreshTokenParsed, err := jwt.ParseWithClaims(refreshToken, refreshClaims, func(token *jwt.Token) (interface{}, error) {
				return []byte(tt.refreshSecret), nil
			})
			require.NoError(t, err)
			assert.True(t, refreshTokenParsed.Valid)
			assert.Equal(t, tt.userID, refreshClaims.UserID)
			// Refresh tokens carry only the subject id.
			assert.Empty(t, refreshClaims.Email)
			assert.Empty(t, refreshClaims.Type)

			assert.True(t, accessClaims.ExpiresAt.Time.After(beforeGenerate))
			assert.True(t, refreshClaims.ExpiresAt.Time.After(accessClaims.ExpiresAt.Time))
		})
	}
}

func TestTokenService_VerifyAccessToken(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)

	accessToken, refreshToken, _, err := ts.Generate("user-123", "test@example.com", "CLIENT")
	require.NoError(t, err)

	claims, err := ts.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "CLIENT", claims.Type)

	// A refresh token is signed with the other secret and must not verify.
	_, err = ts.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = ts.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenService_VerifyAccessToken_Expired(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", -1, 1440)

	accessToken, _, _, err := ts.Generate("user-123", "test@example.com", "CLIENT")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(accessToken)
	assert.Error(t, err)
}

func TestTokenService_VerifyRefreshToken(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)

	_, refreshToken, _, err := ts.Generate("user-123", "test@example.com", "CLIENT")
	require.NoError(t, err)

	storedHash := ts.HashToken(refreshToken)

	tests := []struct {
		name       string
		token      string
		userID     string
		storedHash string
		wantErr    error
	}{
		{
			name:       "valid token",
			token:      refreshToken,
			userID:     "user-123",
			storedHash: storedHash,
			wantErr:    nil,
		},
		{
			name:       "malformed token",
			token:      "garbage",
			userID:     "user-123",
			storedHash: storedHash,
			wantErr:    apperr.ErrRefreshTokenInvalid,
		},
		{
			name:       "wrong subject",
			token:      refreshToken,
			userID:     "someone-else",
			storedHash: storedHash,
			wantErr:    apperr.ErrRefreshTokenMismatch,
		},
		{
			name:       "no active session",
			token:      refreshToken,
			userID:     "user-123",
			storedHash: "",
			wantErr:    apperr.ErrRefreshTokenMismatch,
		},
		{
			name:       "stale session hash",
			token:      refreshToken,
			userID:     "user-123",
			storedHash: ts.HashToken("a-rotated-away-token"),
			wantErr:    apperr.ErrRefreshTokenMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ts.VerifyRefreshToken(tt.token, tt.userID, tt.storedHash)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTokenService_NewSingleUseToken(t *testing.T) {
	ts := NewTokenService("a", "b", 15, 1440)

	raw, hash, err := ts.NewSingleUseToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.Equal(t, ts.HashToken(raw), hash)

	raw2, hash2, err := ts.NewSingleUseToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}

func TestTokenService_Generate_WrongSecretFails(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)

	accessToken, refreshToken, _, err := ts.Generate("test-user-123", "test@example.com", "ADMIN")
	require.NoError(t, err)

	wrongClaims := &JWTCustomClaims{}
	_, err = jwt.ParseWithClaims(accessToken, wrongClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)

	_, err = jwt.ParseWithClaims(refreshToken, wrongClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
