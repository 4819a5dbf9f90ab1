// Package model defines domain types for tally users, transactions and budgets.
package model

// User is a registered account. PasswordHash is the hex digest of the password.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
