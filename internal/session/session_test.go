package session

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tally/internal/model"
)

func TestContextTransitions(t *testing.T) {
	var c Context

	if c.Authenticated() {
		t.Fatal("zero Context is authenticated")
	}
	if _, err := c.UserID(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("UserID() err = %v, want ErrUnauthenticated", err)
	}

	c.Authenticate(model.User{ID: 7, Username: "alice"})
	id, err := c.UserID()
	if err != nil || id != 7 {
		t.Fatalf("UserID() = %d, %v, want 7", id, err)
	}
	if u, ok := c.Current(); !ok || u.Username != "alice" {
		t.Fatalf("Current() = %+v, %v, want alice", u, ok)
	}

	c.Clear()
	if _, ok := c.Current(); ok {
		t.Fatal("Current() ok after Clear")
	}
	c.Clear()
	if c.Authenticated() {
		t.Fatal("second Clear left context authenticated")
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	ts := NewTokenStore(dir, time.Hour).WithClock(fixedClock(now))

	if _, err := ts.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load() before Save err = %v, want ErrNoToken", err)
	}

	if err := ts.Save(model.User{ID: 3, Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, keyFile))
	if err != nil {
		t.Fatalf("stat key: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("key perm = %o, want 600", perm)
	}

	claims, err := ts.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 3 || claims.Username != "alice" {
		t.Fatalf("claims = %+v (id %d, %v), want alice/3", claims, id, err)
	}

	if err := ts.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := ts.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load() after Clear err = %v, want ErrNoToken", err)
	}
	if err := ts.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	dir := t.TempDir()
	issued := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	if err := NewTokenStore(dir, time.Hour).WithClock(fixedClock(issued)).Save(model.User{ID: 1, Username: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	later := NewTokenStore(dir, time.Hour).WithClock(fixedClock(issued.Add(2 * time.Hour)))
	if _, err := later.Load(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Load() of expired token err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenTampered(t *testing.T) {
	dir := t.TempDir()
	ts := NewTokenStore(dir, time.Hour)
	if err := ts.Save(model.User{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, tokenFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	parts := strings.Split(strings.TrimSpace(string(data)), ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	exp := time.Now().Add(time.Hour).Unix()
	forged := `{"username":"mallory","sub":"2","exp":` + strconv.FormatInt(exp, 10) + `}`
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	if err := os.WriteFile(path, []byte(strings.Join(parts, ".")), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	if _, err := ts.Load(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Load() of tampered token err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenFromOtherKey(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	if err := NewTokenStore(a, time.Hour).Save(model.User{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	if err := NewTokenStore(b, time.Hour).Save(model.User{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Save b: %v", err)
	}

	token, err := os.ReadFile(filepath.Join(a, tokenFile))
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if err := os.WriteFile(filepath.Join(b, tokenFile), token, 0o600); err != nil {
		t.Fatalf("copy token: %v", err)
	}

	if _, err := NewTokenStore(b, time.Hour).Load(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Load() with foreign key err = %v, want ErrInvalidToken", err)
	}
}
