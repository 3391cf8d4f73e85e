package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenType = "Bearer"

// Claims carried by issued access tokens
type Claims struct {
	UniqueName string `json:"unique_name"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(strings.TrimSpace(secret)),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a token for identity
func (s *TokenService) IssueToken(identity Identity) (dtos.TokenResponse, error) {
	if len(s.secret) == 0 {
		return dtos.TokenResponse{}, ErrMissingSigningSecret
	}

	now := s.now().UTC()
	claims := Claims{
		UniqueName: identity.Username,
		Role:       identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dtos.TokenResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return dtos.TokenResponse{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}

// ParseToken verifies signature, algorithm and time claims
func (s *TokenService) ParseToken(raw string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSigningSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
