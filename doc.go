// Package sso is a hub-scoped single-sign-on authority: it authenticates
// credentials against bcrypt hashes, issues and verifies signed expiring
// session tokens, enforces role- and hub-scoped authorization policies, and
// drives a short-lived-token password recovery flow.
//
// Tokens are self-contained: once decoded, SessionClaims carry everything a
// policy check needs (subject, email, hub, roles, expiry), so no storage
// lookup happens per request. The one deliberate exception is token-based
// re-issuance, which re-reads the identity from storage before minting a
// fresh session so deleted accounts cannot ride an old token.
//
// Authorization is centralized in the Policy/Authorize guard plus the
// self-protection helpers (no self-delete, no own-hub delete, the base admin
// role is never deletable). Deny outcomes are typed errors, not exceptions;
// the HTTP layer maps unauthenticated and unauthorized errors to distinct
// transport signals.
package sso
