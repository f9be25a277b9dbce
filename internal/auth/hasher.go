package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/mlukasik/auth-service/internal/domain"
)

// argon2id parameters tuned for interactive-login latency: high memory
// cost, low parallelism.
const (
	argon2Memory  = 15000 // KiB
	argon2Time    = 2     // iterations
	argon2Threads = 1     // parallelism
	argon2SaltLen = 16    // salt length in bytes
	argon2KeyLen  = 32    // output length in bytes
)

// ErrMalformedHash is returned when a stored hash cannot be parsed. It
// is distinct from domain.ErrPasswordMismatch so bad data is never
// reported as a bad password.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher computes and verifies argon2id hashes on a fixed-size worker
// pool so CPU-bound hashing never starves the request-handling
// goroutines.
type Hasher struct {
	sem chan struct{}
}

var _ domain.PasswordHasher = (*Hasher)(nil)

// NewHasher creates a hasher with the given number of concurrent
// workers. Zero or negative means one worker per CPU.
func NewHasher(workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Hasher{sem: make(chan struct{}, workers)}
}

// Hash produces a PHC-encoded argon2id hash of the password.
func (h *Hasher) Hash(ctx context.Context, password domain.Password) (string, error) {
	type result struct {
		hash string
		err  error
	}

	done := make(chan result, 1)
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	go func() {
		defer h.release()
		hash, err := hashPassword(password.Expose())
		done <- result{hash: hash, err: err}
	}()

	select {
	case r := <-done:
		return r.hash, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify checks the password against a PHC-encoded hash. Returns
// domain.ErrPasswordMismatch on mismatch, ErrMalformedHash when the
// stored hash cannot be parsed.
func (h *Hasher) Verify(ctx context.Context, password domain.Password, encodedHash string) error {
	done := make(chan error, 1)
	if err := h.acquire(ctx); err != nil {
		return err
	}
	go func() {
		defer h.release()
		done <- verifyPassword(password.Expose(), encodedHash)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.sem
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// PHC string format: $argon2id$v=19$m=15000,t=2,p=1$<salt>$<hash>
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func verifyPassword(password, encodedHash string) error {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return ErrMalformedHash
	}
	if parts[1] != "argon2id" {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if len(expected) == 0 || len(expected) > 1<<10 {
		return fmt.Errorf("%w: bad key length %d", ErrMalformedHash, len(expected))
	}

	// Recompute with the parameters carried by the stored hash so old
	// records keep verifying after a parameter change.
	key := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return domain.ErrPasswordMismatch
	}
	return nil
}
