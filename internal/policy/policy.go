// Package policy decides, per operation, whether a caller may perform it.
// Each operation gets an explicit function taking the resolved caller (nil
// for anonymous) so rules are testable without any transport.
package policy

import (
	"errors"

	"github.com/streamvault/watchlist-api/internal/auth"
)

// ErrUnauthenticated means no caller identity was presented.
var ErrUnauthenticated = errors.New("policy: authentication required")

// ErrForbidden means the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("policy: forbidden")

// CatalogWrite allows create/update/delete of platforms and titles.
// Admin only; reads are open to everyone including anonymous callers.
func CatalogWrite(caller *auth.Identity) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.Admin {
		return ErrForbidden
	}
	return nil
}

// ReviewCreate allows submitting a new review. Any authenticated caller.
func ReviewCreate(caller *auth.Identity) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	return nil
}

// ReviewWrite allows mutating or deleting an existing review. The review's
// author or an admin.
func ReviewWrite(caller *auth.Identity, authorID string) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.Admin || caller.UserID == authorID {
		return nil
	}
	return ErrForbidden
}
