// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, bearer tokens, and ID generation.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Bearer Tokens

Tokens are issued at register and login and presented as
"Authorization: Bearer <token>":

	tokens := auth.NewTokens(secret, auth.DefaultTokenTTL, auth.NewMemoryRevoker())
	token, err := tokens.Issue(userID)
	claims, err := tokens.Verify(ctx, token)

Tokens are HS256 JWTs (github.com/golang-jwt/jwt/v5) carrying jti, sub,
iat and exp. Any other signing method is rejected, as is a token without
exp. Tokens expire after 30 days unless configured otherwise. Verify returns ErrInvalidToken,
ErrExpiredToken or ErrRevokedToken.

# Revocation

Logging out revokes the token id until its expiry. MemoryRevoker serves a
single instance; RedisRevoker shares the list through Redis keys with a
TTL matching the token's remaining lifetime.

# Request Context

Middleware stores verified claims on the request context:

	ctx = auth.WithClaims(ctx, claims)
	claims, ok := auth.ClaimsFromContext(ctx)

# ID Generation

Account and match ids are random UUIDs:

	id := auth.GenerateID()
*/
package auth
