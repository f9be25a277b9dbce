// Package auth implements the credential and session lifecycle core:
// argon2id password hashing on a dedicated worker pool, signed session
// token issuance and validation, the 2FA challenge flow and the six
// request-level workflows exposed over HTTP.
//
// # Architecture
//
// The Service orchestrates the store contracts from internal/domain and
// never talks to a concrete backend; backends are injected at startup.
// The Controller maps Service errors onto the HTTP error taxonomy, so
// lower-layer causes never leak to clients.
//
// # Usage
//
//	hasher := auth.NewHasher(4)
//	tokens, err := auth.NewTokenService(secret)
//	service := auth.NewService(users, banned, codes, emailClient, hasher, tokens)
//	controller := auth.NewController(service)
//	controller.RegisterRoutes(router)
package auth
