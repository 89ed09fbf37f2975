package ss58

import (
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	qt "github.com/frankban/quicktest"
)

// encodeAddress rebuilds an SS58 string from a network prefix byte and a
// 32-byte public key, computing the checksum the same way Decode verifies
// it. Used to produce inputs for the round-trip and corruption tests below.
func encodeAddress(prefix byte, pubkey [32]byte) string {
	payload := append([]byte{prefix}, pubkey[:]...)
	sum := checksum(payload)
	return base58.Encode(append(payload, sum[:]...))
}

func TestDecode(t *testing.T) {
	c := qt.New(t)

	c.Run("round-trip", func(c *qt.C) {
		var pubkey [32]byte
		for i := range pubkey {
			pubkey[i] = byte(i)
		}
		addr := encodeAddress(42, pubkey)

		got, err := Decode(addr)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.DeepEquals, pubkey)
	})

	c.Run("single flipped checksum byte", func(c *qt.C) {
		var pubkey [32]byte
		addr := encodeAddress(42, pubkey)

		raw, err := base58.Decode(addr)
		c.Assert(err, qt.IsNil)
		raw[len(raw)-1] ^= 0xff
		corrupted := base58.Encode(raw)

		_, err = Decode(corrupted)
		c.Assert(err, qt.ErrorMatches, "invalid substrate address: checksum mismatch")
	})

	c.Run("empty", func(c *qt.C) {
		_, err := Decode("")
		c.Assert(err, qt.ErrorMatches, "invalid substrate address: must not be empty")
	})

	c.Run("not base58", func(c *qt.C) {
		_, err := Decode("0OIl-not-base58")
		c.Assert(err, qt.ErrorMatches, "invalid substrate address: not valid base58")
	})

	c.Run("wrong length", func(c *qt.C) {
		_, err := Decode(base58.Encode([]byte{42, 1, 2, 3}))
		c.Assert(err, qt.ErrorMatches, "invalid substrate address: unsupported address length .*")
	})

	c.Run("well-known Alice address decodes without error", func(c *qt.C) {
		got, err := Decode("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
		c.Assert(err, qt.IsNil)
		c.Assert(hex.EncodeToString(got[:]), qt.HasLen, 64)
	})
}
