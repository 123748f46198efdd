// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: Persistence failures; unique violations pass through raw
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SoftDelete marks the account as deleted without removing the row.
	*/
	SoftDelete(context context.Context, id string) error

	/*
		MarkVerified flips the account to isverified = true.
	*/
	MarkVerified(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions. Sessions are volatile and keyed by token hash; expiry is enforced
// by the store itself, so there is no separate cleanup contract.
type SessionRepository interface {

	/*
		Create persists a new tracking session for an authenticated login.
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the token hash.

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound if absent, revoked or expired
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke permanently invalidates the session with the token hash.
	*/
	Revoke(context context.Context, tokenHash string) error

	/*
		RevokeAll revokes every active session belonging to the userID.
	*/
	RevokeAll(context context.Context, userID string) error

	/*
		RevokeOthers revokes all of the user's sessions except the one
		identified by keepTokenHash.
	*/
	RevokeOthers(context context.Context, userID, keepTokenHash string) error
}

// # Volatile Data Access

// TokenRepository defines the contract for short-lived single-use tokens
// (password reset, email verification) mapped to a user ID.
type TokenRepository interface {

	/*
		Set stores a token associated with a userID for a limited duration.
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given token.

		Returns:
		  - string: UserID
		  - error: apperr.NotFound if the token is absent or expired
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a token after successful use.
	*/
	Delete(context context.Context, token string) error
}
