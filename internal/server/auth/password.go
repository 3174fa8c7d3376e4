package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 10 matches the hashes produced by the original deployment, so
// existing credentials keep verifying.
const hashCost = 10

// dummyHash is a well-formed bcrypt hash compared against when the email is
// unknown, so the response time does not reveal whether the account exists.
// The comparison result is discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
// A mismatch is reported as (false, nil); the error return is reserved for
// malformed hashes and other internal failures.
func VerifyPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}

// CompareDummy burns one bcrypt comparison against dummyHash. Called on the
// unknown-email path to keep its timing in line with the wrong-password path.
func CompareDummy(password string) {
	_, _ = VerifyPassword(dummyHash, password)
}
