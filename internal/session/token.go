package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/theirongolddev/tally/internal/model"
)

const (
	keyFile   = "session.key"
	tokenFile = "session.jwt"
	keySize   = 32
)

var (
	// ErrNoToken means no session has been saved.
	ErrNoToken = errors.New("no saved session")
	// ErrInvalidToken covers bad signatures, expiry and malformed claims.
	ErrInvalidToken = errors.New("invalid saved session")
)

// Claims identifies the user a saved session belongs to. Subject carries the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenStore persists a signed session token in a directory. The signing key
// is generated on first use and never leaves that directory.
type TokenStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewTokenStore returns a store rooted at dir whose tokens expire after ttl.
func NewTokenStore(dir string, ttl time.Duration) *TokenStore {
	return &TokenStore{dir: dir, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *TokenStore) WithClock(now func() time.Time) *TokenStore {
	s.now = now
	return s
}

// Save signs a token for u and writes it, replacing any previous session.
func (s *TokenStore) Save(u model.User) error {
	key, err := s.key(true)
	if err != nil {
		return err
	}

	now := s.now()
	claims := Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return fmt.Errorf("signing session: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(signed+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Load reads and validates the saved token. It does not check that the user
// still exists; callers do that against the store.
func (s *TokenStore) Load() (Claims, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return Claims{}, ErrNoToken
	}
	if err != nil {
		return Claims{}, fmt.Errorf("reading session: %w", err)
	}

	key, err := s.key(false)
	if errors.Is(err, os.ErrNotExist) {
		return Claims{}, fmt.Errorf("%w: signing key missing", ErrInvalidToken)
	}
	if err != nil {
		return Claims{}, err
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(strings.TrimSpace(string(data)), &claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if _, err := claims.UserID(); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Clear removes the saved token. A missing token is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

func (s *TokenStore) key(create bool) ([]byte, error) {
	path := filepath.Join(s.dir, keyFile)
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != keySize {
			return nil, fmt.Errorf("%w: signing key has %d bytes", ErrInvalidToken, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) || !create {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing signing key: %w", err)
	}
	return key, nil
}
