// Package ss58 decodes substrate SS58 addresses into their underlying
// sr25519 public key (spec §4.C / GLOSSARY).
package ss58

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// checksumPrefix is the fixed context string substrate hashes ahead of the
// address payload when deriving the checksum.
const checksumPrefix = "SS58PRE"

// pubkeyLen + 1 network-prefix byte + 2 checksum bytes is the only address
// shape this decoder accepts; SS58 also defines longer multi-byte prefixes
// for other payload sizes, but every address this service handles carries a
// 32-byte sr25519 key.
const (
	pubkeyLen  = 32
	prefixLen  = 1
	checksumLen = 2
	addressLen = prefixLen + pubkeyLen + checksumLen
)

// InvalidAddressError reports why an SS58 address could not be decoded
// (spec §4.C InvalidSubstrateAddress{reason}).
type InvalidAddressError struct {
	Reason string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid substrate address: %s", e.Reason)
}

func invalid(reason string) *InvalidAddressError {
	return &InvalidAddressError{Reason: reason}
}

// Decode extracts the 32-byte sr25519 public key from addr, verifying its
// blake2b-512 checksum. Pure function, no I/O (spec §4.C).
func Decode(addr string) ([32]byte, error) {
	var out [32]byte
	if addr == "" {
		return out, invalid("must not be empty")
	}

	raw, err := base58.Decode(addr)
	if err != nil {
		return out, invalid("not valid base58")
	}
	if len(raw) != addressLen {
		return out, invalid(fmt.Sprintf("unsupported address length %d", len(raw)))
	}

	payload := raw[:prefixLen+pubkeyLen]
	gotChecksum := raw[prefixLen+pubkeyLen:]
	wantChecksum := checksum(payload)
	if gotChecksum[0] != wantChecksum[0] || gotChecksum[1] != wantChecksum[1] {
		return out, invalid("checksum mismatch")
	}

	copy(out[:], payload[prefixLen:])
	return out, nil
}

func checksum(payload []byte) [2]byte {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err) // blake2b.New512 only errors on a too-long key, which we never pass
	}
	h.Write([]byte(checksumPrefix))
	h.Write(payload)
	sum := h.Sum(nil)

	var out [2]byte
	copy(out[:], sum[:2])
	return out
}
