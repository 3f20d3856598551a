package auth

import "errors"

var (
	// ErrDuplicateUser is returned by Register when the username is taken.
	ErrDuplicateUser = errors.New("username already registered")

	// ErrInvalidCredentials is returned by Login when the user does not exist
	// or the password does not verify. The two cases are deliberately not
	// distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned by ResolveIdentity for any bad token:
	// malformed, tampered, expired, or referencing a user that no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")
)
