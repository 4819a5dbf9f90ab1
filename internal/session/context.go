// Package session tracks who is logged in, both in memory for the lifetime of
// a process and on disk between one-shot commands.
package session

import (
	"errors"

	"github.com/theirongolddev/tally/internal/model"
)

// ErrUnauthenticated is returned by operations that need a logged-in user.
var ErrUnauthenticated = errors.New("not logged in")

// Context is either anonymous or holds exactly one authenticated user.
// The zero value is anonymous.
type Context struct {
	user model.User
	ok   bool
}

// Authenticate makes u the current user, replacing any previous one.
func (c *Context) Authenticate(u model.User) {
	c.user = u
	c.ok = true
}

// Clear returns the context to the anonymous state.
func (c *Context) Clear() {
	c.user = model.User{}
	c.ok = false
}

// Current returns the authenticated user, if any.
func (c *Context) Current() (model.User, bool) {
	return c.user, c.ok
}

// Authenticated reports whether a user is logged in.
func (c *Context) Authenticated() bool {
	return c.ok
}

// UserID returns the current user's id or ErrUnauthenticated.
func (c *Context) UserID() (int64, error) {
	if !c.ok {
		return 0, ErrUnauthenticated
	}
	return c.user.ID, nil
}
