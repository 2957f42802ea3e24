// Package repository holds the gorm-backed stores. Every application query is
// scoped by owner, so a record belonging to another user is reported as
// ErrNotFound exactly like a missing one.
package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
