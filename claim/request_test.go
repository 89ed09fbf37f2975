package claim

import (
	"encoding/hex"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func validRequest() ProveRequest {
	return ProveRequest{
		SS58Address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		Signature:   "0x" + strings.Repeat("00", 64),
		EVMAddress:  "0x1111111111111111111111111111111111111111",
		Challenge:   "0x" + strings.Repeat("cc", 32),
		Amount:      "1000000000000000000",
	}
}

func TestValidate(t *testing.T) {
	c := qt.New(t)

	c.Run("accepts a well-formed request", func(c *qt.C) {
		in, err := Validate(validRequest())
		c.Assert(err, qt.IsNil)
		c.Assert(in.SubstrateAddress, qt.Equals, validRequest().SS58Address)
		wantHex, err := hex.DecodeString("0de0b6b3a7640000")
		c.Assert(err, qt.IsNil)
		var want [32]byte
		copy(want[32-len(wantHex):], wantHex)
		c.Assert(in.Amount, qt.DeepEquals, want)
	})

	c.Run("missing 0x prefix is still accepted", func(c *qt.C) {
		req := validRequest()
		req.Signature = strings.Repeat("00", 64)
		_, err := Validate(req)
		c.Assert(err, qt.IsNil)
	})

	c.Run("signature wrong length", func(c *qt.C) {
		for _, n := range []int{63, 65} {
			req := validRequest()
			req.Signature = "0x" + strings.Repeat("ab", n)
			_, err := Validate(req)
			c.Assert(err, qt.ErrorMatches, `invalid field "signature".*`)
		}
	})

	c.Run("amount zero", func(c *qt.C) {
		req := validRequest()
		req.Amount = "0"
		in, err := Validate(req)
		c.Assert(err, qt.IsNil)
		c.Assert(in.Amount, qt.DeepEquals, [32]byte{})
	})

	c.Run("amount max uint256", func(c *qt.C) {
		req := validRequest()
		req.Amount = "115792089237316195423570985008687907853269984665640564039457584007913129639935"
		in, err := Validate(req)
		c.Assert(err, qt.IsNil)
		var want [32]byte
		for i := range want {
			want[i] = 0xff
		}
		c.Assert(in.Amount, qt.DeepEquals, want)
	})

	c.Run("amount overflow", func(c *qt.C) {
		req := validRequest()
		req.Amount = "115792089237316195423570985008687907853269984665640564039457584007913129639936"
		_, err := Validate(req)
		c.Assert(err, qt.ErrorMatches, `invalid field "amount": overflow`)
	})

	c.Run("amount non-decimal", func(c *qt.C) {
		for _, bad := range []string{"1e9", "0x10", "-1", "1_000"} {
			req := validRequest()
			req.Amount = bad
			_, err := Validate(req)
			c.Assert(err, qt.ErrorMatches, `invalid field "amount".*`)
		}
	})

	c.Run("empty required fields", func(c *qt.C) {
		fields := map[string]func(*ProveRequest){
			"ss58Address": func(r *ProveRequest) { r.SS58Address = "" },
			"signature":   func(r *ProveRequest) { r.Signature = "" },
			"evmAddress":  func(r *ProveRequest) { r.EVMAddress = "" },
			"challenge":   func(r *ProveRequest) { r.Challenge = "" },
			"amount":      func(r *ProveRequest) { r.Amount = "" },
		}
		for name, mutate := range fields {
			req := validRequest()
			mutate(&req)
			_, err := Validate(req)
			c.Assert(err, qt.ErrorMatches, `invalid field "`+name+`".*`, qt.Commentf("field %s", name))
		}
	})
}
