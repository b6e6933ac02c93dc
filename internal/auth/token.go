package auth

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = 7 * 24 * time.Hour

const (
	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
)

// TokenManager signs and verifies the HS256 bearer tokens that carry the
// actor's id, email and role.
type TokenManager struct {
	secret []byte
}

// NewTokenManager returns a TokenManager signing with the given secret.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

// Issue creates a signed token for the given identity.
func (m *TokenManager) Issue(userID uint, email string, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"email": email,
		"role":  string(role),
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(TokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the Actor it
// carries. Expired, malformed or mis-signed tokens fail with an
// UNAUTHENTICATED error; callers at the gateway boundary translate that into
// the anonymous actor rather than a user-visible failure.
func (m *TokenManager) Verify(tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, models.NewUnauthenticatedError("Invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, models.NewUnauthenticatedError("Invalid token subject")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return Actor{}, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return Actor{}, models.NewUnauthenticatedError("Invalid role in token")
	}

	return Actor{ID: uint(userID), Email: email, Role: role}, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
