// Package digest provides the one-way password digests used by the credential store.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
)

// Default is the algorithm used when none is configured.
const Default = "sha256"

// ErrUnknownAlgorithm is returned by Lookup for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// Digester turns arbitrary bytes into a fixed-length digest.
type Digester interface {
	Sum(p []byte) []byte
}

// Func adapts a plain function to the Digester interface.
type Func func(p []byte) []byte

// Sum implements Digester.
func (f Func) Sum(p []byte) []byte {
	return f(p)
}

var algorithms = map[string]Digester{
	"sha256": Func(func(p []byte) []byte {
		s := sha256.Sum256(p)
		return s[:]
	}),
	"blake2b-256": Func(func(p []byte) []byte {
		s := blake2b.Sum256(p)
		return s[:]
	}),
	"blake2s-256": Func(func(p []byte) []byte {
		s := blake2s.Sum256(p)
		return s[:]
	}),
}

// Lookup returns the digester registered under name (case-insensitive).
func Lookup(name string) (Digester, error) {
	d, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names lists the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hex hashes a password and returns the lowercase hex digest stored for users.
func Hex(d Digester, password string) string {
	return hex.EncodeToString(d.Sum([]byte(password)))
}
