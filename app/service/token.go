package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

type Claims struct {
	UserID uint64 `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the two signed credentials of the auth flow.
// Access and refresh tokens carry the same claim shape but are signed with
// different secrets and lifetimes.
type TokenIssuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken returns the signed token plus its lifetime in seconds,
// which clients use to schedule refreshes.
func (t *TokenIssuer) IssueAccessToken(userID uint64, email, role string) (string, int64, error) {
	token, err := t.sign(userID, email, role, t.accessSecret, t.accessTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int64(t.accessTTL.Seconds()), nil
}

func (t *TokenIssuer) IssueRefreshToken(userID uint64, email, role string) (string, error) {
	return t.sign(userID, email, role, t.refreshSecret, t.refreshTTL)
}

func (t *TokenIssuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, t.accessSecret)
}

func (t *TokenIssuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, t.refreshSecret)
}

// VerifyAccessTokenAllowExpired checks the signature but tolerates an elapsed
// lifetime. The refresh route uses it so holders of an expired access token
// can still reach the re-authentication path.
func (t *TokenIssuer) VerifyAccessTokenAllowExpired(tokenString string) (*Claims, error) {
	claims, err := verify(tokenString, t.accessSecret)
	if errors.Is(err, ErrTokenExpired) {
		return verifyIgnoringExpiry(tokenString, t.accessSecret)
	}
	return claims, err
}

func (t *TokenIssuer) sign(userID uint64, email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// verify decodes and checks a token, keeping expiry distinct from every other
// failure so callers can ask the user to re-authenticate instead of rejecting.
func verify(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func verifyIgnoringExpiry(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
