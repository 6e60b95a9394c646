package sso

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds identifies credential failures regardless of cause.
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeTokenExpired identifies tokens past their expiration.
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed identifies tokens that could not be parsed.
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeTokenBadSignature identifies tokens whose signature did not verify.
	TextCodeTokenBadSignature = "TOKEN_BAD_SIGNATURE"
	// TextCodeMissingRole identifies policy denials for a missing role.
	TextCodeMissingRole = "MISSING_ROLE"
	// TextCodeWrongHub identifies policy denials for a hub mismatch.
	TextCodeWrongHub = "WRONG_HUB"
	// TextCodeSelfAction identifies denied self-targeting mutations.
	TextCodeSelfAction = "SELF_ACTION_FORBIDDEN"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so callers cannot tell which part failed.
var ErrInvalidCredentials = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrTokenExpired is returned when a token's exp claim is in the past.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed at all.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenBadSignature is returned when a token's signature does not verify
// against the configured signing secret.
var ErrTokenBadSignature = goerrors.New("token signature is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenBadSignature).
	WithCode(goerrors.CodeUnauthorized)

// ErrMissingRole is returned when a policy requires a role the claims lack.
var ErrMissingRole = goerrors.New("required role is missing", goerrors.CategoryAuthz).
	WithTextCode(TextCodeMissingRole).
	WithCode(goerrors.CodeForbidden)

// ErrWrongHub is returned when a policy requires a hub the claims do not carry.
var ErrWrongHub = goerrors.New("operation is scoped to a different hub", goerrors.CategoryAuthz).
	WithTextCode(TextCodeWrongHub).
	WithCode(goerrors.CodeForbidden)

// ErrSelfActionForbidden is returned when an identity targets itself, its own
// hub, or a protected role with a destructive operation.
var ErrSelfActionForbidden = goerrors.New("operation may not target the caller or a protected record", goerrors.CategoryAuthz).
	WithTextCode(TextCodeSelfAction).
	WithCode(goerrors.CodeForbidden)

// ErrUnableToFindSession is the error when the request carries no session
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode("SESSION_NOT_FOUND").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest)

// IsUnauthenticated reports whether err maps to an unauthenticated outcome at
// the boundary. The token error flavors stay distinguishable for logging but
// all collapse to the same transport signal.
func IsUnauthenticated(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuth
	}

	return false
}

// IsAuthorizationDenied reports whether err is a role/hub/self-protection
// denial, as opposed to a credential or token failure.
func IsAuthorizationDenied(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuthz
	}

	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
