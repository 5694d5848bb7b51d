package auth

import "golang.org/x/crypto/bcrypt"

// APIKeyVerifier checks a presented API key against a configured hash.
type APIKeyVerifier interface {
	// Verify returns nil when the key matches, ErrInvalidAPIKey otherwise.
	Verify(key string) error
}

// BcryptAPIKeyVerifier implements APIKeyVerifier using bcrypt. The hash is
// produced out of band by cmd/hash-generator and set through configuration.
type BcryptAPIKeyVerifier struct {
	hash string
}

// NewBcryptAPIKeyVerifier creates a verifier for the given bcrypt hash.
func NewBcryptAPIKeyVerifier(hash string) *BcryptAPIKeyVerifier {
	return &BcryptAPIKeyVerifier{hash: hash}
}

// Verify implements APIKeyVerifier.
func (v *BcryptAPIKeyVerifier) Verify(key string) error {
	if v.hash == "" || key == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
