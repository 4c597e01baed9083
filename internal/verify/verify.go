// Package verify checks candidate passwords against stored credentials.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm names carried in jobs and results.
const (
	AlgIteratedSHA256 = "isha256"
	AlgBcrypt         = "bcrypt"
	AlgMD5            = "md5"
	AlgSHA256         = "sha256"
	AlgSHA512         = "sha512"
	AlgYescrypt       = "yescrypt"
)

var (
	ErrUnsupportedAlg   = errors.New("malformed or unsupported hash entry")
	ErrCryptUnsupported = errors.New("crypt(3) not available on this platform")
)

// Verifier reports whether a candidate password matches a credential.
// Implementations are safe for concurrent use.
type Verifier interface {
	Verify(candidate string) (bool, error)
}

// DetectAlg maps a full hash string to its algorithm by prefix.
func DetectAlg(fullHash string) (string, error) {
	switch {
	case strings.HasPrefix(fullHash, "$isha256$"):
		return AlgIteratedSHA256, nil
	case strings.HasPrefix(fullHash, "$1$"):
		return AlgMD5, nil
	case strings.HasPrefix(fullHash, "$5$"):
		return AlgSHA256, nil
	case strings.HasPrefix(fullHash, "$6$"):
		return AlgSHA512, nil
	case strings.HasPrefix(fullHash, "$2a$") || strings.HasPrefix(fullHash, "$2b$") || strings.HasPrefix(fullHash, "$2y$"):
		return AlgBcrypt, nil
	case strings.HasPrefix(fullHash, "$y$") || strings.HasPrefix(fullHash, "$7$"):
		return AlgYescrypt, nil
	default:
		return "", ErrUnsupportedAlg
	}
}

// New returns a verifier for the credential of username.
func New(alg, username, fullHash string) (Verifier, error) {
	switch alg {
	case AlgIteratedSHA256:
		cred, err := ParseIterated(username, fullHash)
		if err != nil {
			return nil, err
		}
		return cred, nil

	case AlgBcrypt:
		// bcrypt has its own format ($2b$...)
		return bcryptVerifier{hash: []byte(fullHash)}, nil

	case AlgMD5, AlgSHA256, AlgSHA512, AlgYescrypt:
		return cryptVerifier{fullHash: fullHash}, nil

	default:
		return nil, fmt.Errorf("unsupported alg: %s", strings.TrimSpace(alg))
	}
}

type bcryptVerifier struct {
	hash []byte
}

func (v bcryptVerifier) Verify(candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

type cryptVerifier struct {
	fullHash string
}

func (v cryptVerifier) Verify(candidate string) (bool, error) {
	got, err := cryptHash(candidate, v.fullHash)
	if err != nil {
		return false, err
	}
	return got == v.fullHash, nil
}
