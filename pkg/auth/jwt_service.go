package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

type JWTService struct {
	secretKey       []byte
	accessLifespan  time.Duration
	refreshLifespan time.Duration
}

type CustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, accessLifespan, refreshLifespan time.Duration) *JWTService {
	return &JWTService{
		secretKey:       []byte(secretKey),
		accessLifespan:  accessLifespan,
		refreshLifespan: refreshLifespan,
	}
}

func (s *JWTService) RefreshLifespan() time.Duration {
	return s.refreshLifespan
}

func (s *JWTService) generate(userID uuid.UUID, kind TokenKind, lifespan time.Duration) (string, error) {
	claims := CustomClaims{
		userID,
		kind,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifespan)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
			Issuer:    "viewtube-api",
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}

	return signedString, nil
}

func (s *JWTService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, TokenKindAccess, s.accessLifespan)
}

func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, TokenKindRefresh, s.refreshLifespan)
}

// GenerateTokenPair issues a fresh access/refresh pair. The refresh token
// must additionally be persisted by the caller so it can be rotated and
// revoked on logout.
func (s *JWTService) GenerateTokenPair(userID uuid.UUID) (access, refresh string, err error) {
	access, err = s.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *JWTService) ValidateToken(tokenString string, kind TokenKind) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("error when parsing token claims")
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("wrong token kind: got %q, want %q", claims.Kind, kind)
	}
	return claims, nil
}
