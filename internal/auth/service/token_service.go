package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service TokenGenerator

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
)

type TokenGenerator interface {
	Generate(userID, email, userType string) (string, string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString, userID, storedHash string) error
	NewSingleUseToken() (raw string, hash string, err error)
	HashToken(raw string) string
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"type"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// Generate issues an access/refresh token pair. Access tokens carry id,
// email and type claims; refresh tokens carry only the subject id and are
// signed with a separate secret so one can never stand in for the other.
func (ts *TokenService) Generate(userID, email, userType string) (string, string, time.Time, error) {
	now := time.Now()

	accessClaims := JWTCustomClaims{
		UserID: userID,
		Email:  email,
		Type:   userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		refreshClaims).SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, now.Add(ts.AccessTokenExpiry), nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

func (ts *TokenService) parse(tokenString, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.parse(tokenString, ts.AccessTokenSecret)
}

// VerifyRefreshToken requires the token to cryptographically validate, to
// belong to the claimed subject, and to match the stored session hash.
func (ts *TokenService) VerifyRefreshToken(tokenString, userID, storedHash string) error {
	claims, err := ts.parse(tokenString, ts.RefreshTokenSecret)
	if err != nil {
		return apperr.ErrRefreshTokenInvalid
	}

	if claims.UserID != userID {
		return apperr.ErrRefreshTokenMismatch
	}

	if storedHash == "" {
		return apperr.ErrRefreshTokenMismatch
	}

	hash := ts.HashToken(tokenString)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(storedHash)) != 1 {
		return apperr.ErrRefreshTokenMismatch
	}

	return nil
}

// NewSingleUseToken returns a high-entropy token value and its sha256
// fingerprint. Only the fingerprint is ever persisted.
func (ts *TokenService) NewSingleUseToken() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	value := hex.EncodeToString(raw)
	return value, ts.HashToken(value), nil
}

func (ts *TokenService) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
