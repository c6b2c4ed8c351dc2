// Package fingerprint computes the short content identifiers that key the
// dance catalog. Two files with identical bytes always produce the same
// fingerprint, regardless of name or location.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Length is the number of hex characters kept from the digest. Short enough
// to read at a glance, long enough that collisions within one collection are
// not a practical concern.
const Length = 8

const chunkSize = 1 << 20 // 1 MiB read buffer

// File hashes the file at path and returns its fingerprint.
//
// The file is streamed through a fixed-size buffer, so arbitrarily large
// bundles never load fully into memory. If the file vanished between
// discovery and read, the returned error satisfies errors.Is(err,
// fs.ErrNotExist) and callers should skip the file for this pass.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	defer f.Close()
	fp, err := FromReader(f)
	if err != nil {
		return "", fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	return fp, nil
}

// FromReader hashes everything readable from r and returns the fingerprint.
func FromReader(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:Length], nil
}
