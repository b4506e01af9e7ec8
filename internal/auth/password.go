package auth

import "golang.org/x/crypto/bcrypt"

const defaultBcryptCost = 12

// PasswordHasher wraps bcrypt with a fixed work factor. It is a pure
// function over strings: no identity knowledge, no policy checks (password
// length is validated upstream).
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher with the given cost, falling back to the
// default when the value is outside bcrypt's supported range.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return PasswordHasher{cost: cost}
}

// Hash produces a salted one-way hash. Each call yields a different hash for
// the same input because the salt is embedded.
func (h PasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func (h PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
