package domain

// User is a credential record. Created on signup, deleted explicitly,
// never otherwise mutated. PasswordHash is the opaque argon2id encoding
// of the signup password; the raw password is never stored.
type User struct {
	Email        Email
	PasswordHash string
	Requires2FA  bool
}
