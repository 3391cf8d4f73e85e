package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 120000
	DefaultRole       = "User"
	saltSize          = 16
	hashSize          = 32
)

// Identity is an authenticated caller
type Identity struct {
	Username string
	Role     string
}

type credential struct {
	username   string
	role       string
	salt       []byte
	hash       []byte
	iterations int
}

func (c credential) matches(password string) bool {
	derived := pbkdf2.Key([]byte(password), c.salt, c.iterations, len(c.hash), sha256.New)
	return subtle.ConstantTimeCompare(derived, c.hash) == 1
}

// AuthService checks username/password pairs against configured PBKDF2-SHA256 records
type AuthService struct {
	credentials []credential
	// compared against when the username is unknown so both failure paths cost one derivation
	dummy credential
}

// NewAuthService decodes the configured records. Malformed base64 is a
// startup error.
func NewAuthService(records []config.CredentialConfig) (*AuthService, error) {
	s := &AuthService{credentials: make([]credential, 0, len(records))}
	for i, r := range records {
		salt, err := base64.StdEncoding.DecodeString(r.Salt)
		if err != nil {
			return nil, fmt.Errorf("auth.users[%d]: invalid salt: %w", i, err)
		}
		hash, err := base64.StdEncoding.DecodeString(r.Hash)
		if err != nil {
			return nil, fmt.Errorf("auth.users[%d]: invalid hash: %w", i, err)
		}
		if len(hash) == 0 {
			return nil, fmt.Errorf("auth.users[%d]: empty hash", i)
		}

		c := credential{
			username:   strings.TrimSpace(r.Username),
			role:       r.Role,
			salt:       salt,
			hash:       hash,
			iterations: r.Iterations,
		}
		if c.role == "" {
			c.role = DefaultRole
		}
		if c.iterations <= 0 {
			c.iterations = DefaultIterations
		}
		s.credentials = append(s.credentials, c)
	}

	s.dummy = dummyCredential(s.credentials)
	return s, nil
}

// dummyCredential matches the costliest configured record so an unknown
// username takes as long as a wrong password
func dummyCredential(credentials []credential) credential {
	saltLen, hashLen, iterations := saltSize, hashSize, DefaultIterations
	if len(credentials) > 0 {
		saltLen, hashLen, iterations = 0, 0, 0
	}
	for _, c := range credentials {
		saltLen = max(saltLen, len(c.salt))
		hashLen = max(hashLen, len(c.hash))
		iterations = max(iterations, c.iterations)
	}
	return credential{
		salt:       make([]byte, saltLen),
		hash:       make([]byte, hashLen),
		iterations: iterations,
	}
}

// ValidateCredentials returns the caller's identity, or nil when the username
// is unknown or the password is wrong. The two cases are indistinguishable.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)

	for _, c := range s.credentials {
		if !strings.EqualFold(c.username, username) {
			continue
		}
		if !c.matches(password) {
			logger.FromContext(ctx).Info("Authentication failed", zap.String("username", username))
			return nil, nil
		}
		return &Identity{Username: c.username, Role: c.role}, nil
	}

	s.dummy.matches(password)
	logger.FromContext(ctx).Info("Authentication failed", zap.String("username", username))
	return nil, nil
}

// NewCredential builds a configuration record for username and password with
// a random salt
func NewCredential(username, password, role string, iterations int) (config.CredentialConfig, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return config.CredentialConfig{}, err
	}
	return config.CredentialConfig{
		Username:   username,
		Role:       role,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Hash:       HashPassword(password, salt, iterations),
		Iterations: iterations,
	}, nil
}

// HashPassword derives the base64 PBKDF2-SHA256 hash stored in credential records
func HashPassword(password string, salt []byte, iterations int) string {
	return base64.StdEncoding.EncodeToString(pbkdf2.Key([]byte(password), salt, iterations, hashSize, sha256.New))
}
