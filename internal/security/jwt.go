// JWT issue/verify (HS256): access + refresh pair, role claim for the dashboard.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tokens is the pair returned to the client on login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token seconds
	Role         string `json:"role"`
}

type JWTManager struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(signingKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Token types keep the two parse paths honest: an access token must never be
// accepted where a refresh token is expected (and vice versa), even though both
// are signed with the same key.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type AccessClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"` // admin | staff
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// RefreshClaims carries its revocation ID in RegisteredClaims.ID (the jti claim).
type RefreshClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// Issue signs an access+refresh pair for the user; the refresh token carries a
// unique JTI so it can be revoked on logout.
func (m *JWTManager) Issue(role string, userID uuid.UUID) (Tokens, RefreshClaims, error) {
	now := time.Now()

	accessClaims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role:      role,
		UserID:    userID.String(),
		TokenType: tokenTypeAccess,
	}
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessToken, err := access.SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, RefreshClaims{}, err
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		Role:      role,
		UserID:    userID.String(),
		TokenType: tokenTypeRefresh,
	}
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err := refresh.SignedString(m.signingKey)
	if err != nil {
		return Tokens{}, RefreshClaims{}, err
	}

	return Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
		Role:         role,
	}, refreshClaims, nil
}

// ParseAccess validates an access token and returns the user identity and role.
func (m *JWTManager) ParseAccess(tokenStr string) (userID uuid.UUID, role string, err error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}
	claims, ok := tok.Claims.(*AccessClaims)
	if !ok || !tok.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenTypeAccess {
		return uuid.Nil, "", fmt.Errorf("not an access token")
	}
	idStr := claims.UserID
	if idStr == "" {
		idStr = claims.Subject
	}
	uid, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", err
	}
	return uid, claims.Role, nil
}

// ParseRefresh validates a refresh token and returns its claims (including JTI).
func (m *JWTManager) ParseRefresh(tokenStr string) (RefreshClaims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return RefreshClaims{}, err
	}
	claims, ok := tok.Claims.(*RefreshClaims)
	if !ok || !tok.Valid {
		return RefreshClaims{}, fmt.Errorf("invalid token")
	}
	// An access token must not be laundered into a fresh pair: it carries no
	// jti, so the logout denylist could never catch it.
	if claims.TokenType != tokenTypeRefresh || claims.ID == "" {
		return RefreshClaims{}, fmt.Errorf("not a refresh token")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return *claims, nil
}

// ValidateToken adapts ParseAccess to the middleware TokenValidator interface.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (string, string, error) {
	uid, role, err := m.ParseAccess(token)
	if err != nil {
		return "", "", err
	}
	return uid.String(), role, nil
}
