//go:build !linux || !cgo

package verify

func cryptHash(string, string) (string, error) {
	return "", ErrCryptUnsupported
}
