package mock

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/prover"
)

func TestClientProve(t *testing.T) {
	c := qt.New(t)

	client := New()
	elf := []byte("guest-elf-contents")

	pk, vk, err := client.Setup(context.Background(), elf)
	c.Assert(err, qt.IsNil)
	c.Assert(pk, qt.Not(qt.HasLen), 0)
	c.Assert(vk, qt.Not(qt.HasLen), 0)

	req := claim.ProveRequest{
		SS58Address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		Signature:   "0x" + repeat("00", 64),
		EVMAddress:  "0x1111111111111111111111111111111111111111",
		Challenge:   "0x" + repeat("cc", 32),
		Amount:      "1000000000000000000",
	}
	input, err := claim.Validate(req)
	c.Assert(err, qt.IsNil)

	proof, err := client.Prove(context.Background(), pk, *input)
	c.Assert(err, qt.IsNil)
	c.Assert(proof.PublicValues, qt.HasLen, claim.EncodedLen)
	c.Assert(proof.ProofBytes, qt.Not(qt.HasLen), 0)

	c.Assert(client.Verify(proof, vk), qt.IsNil)

	decoded, err := claim.Decode(proof.PublicValues)
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.EVMAddress, qt.DeepEquals, input.EVMAddress)
	c.Assert(decoded.Amount, qt.DeepEquals, input.Amount)
	c.Assert(decoded.Challenge, qt.DeepEquals, input.Challenge)
}

func TestClientProveBadAddress(t *testing.T) {
	c := qt.New(t)

	client := New()
	input := claim.ProgramInput{SubstrateAddress: "not-an-address"}
	_, err := client.Prove(context.Background(), prover.ProvingKey{}, input)
	c.Assert(err, qt.ErrorMatches, "invalid substrate address:.*")
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
