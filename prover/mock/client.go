// Package mock implements prover.Client without a live SP1 backend, for
// local development and tests. It is gated behind ALLOW_MOCK=true (spec
// §6) because its "proof" carries no cryptographic weight — only the
// public-values plumbing is real.
package mock

import (
	"context"
	"crypto/sha256"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/claim/ss58"
	"github.com/tangle-network/migration-claim-prover/prover"
)

// Client is a deterministic, in-process stand-in for the real SP1 prover.
type Client struct{}

// New returns a mock prover.Client.
func New() *Client {
	return &Client{}
}

// Setup derives placeholder keys from the ELF digest alone; no real
// proving/verifying key material exists in mock mode.
func (c *Client) Setup(_ context.Context, elf []byte) (prover.ProvingKey, prover.VerifyingKey, error) {
	digest := sha256.Sum256(elf)
	return prover.ProvingKey(digest[:]), prover.VerifyingKey(digest[:]), nil
}

// Prove builds the same ABI-encoded PublicValues a real guest program
// would commit (decoding the SS58 address to its pubkey per spec §4.C) and
// wraps them in a deterministic placeholder proof, so downstream codec and
// on-chain verification plumbing runs unchanged against mock output.
func (c *Client) Prove(_ context.Context, pk prover.ProvingKey, input claim.ProgramInput) (prover.Proof, error) {
	pubkey, err := ss58.Decode(input.SubstrateAddress)
	if err != nil {
		return prover.Proof{}, err
	}

	values := claim.PublicValues{
		Pubkey:     pubkey,
		EVMAddress: input.EVMAddress,
		Amount:     input.Amount,
		Challenge:  input.Challenge,
	}
	encoded, err := claim.Encode(values)
	if err != nil {
		return prover.Proof{}, err
	}

	proofBytes := sha256.Sum256(append(append([]byte{}, pk...), encoded...))
	return prover.Proof{
		ProofBytes:   proofBytes[:],
		PublicValues: encoded,
	}, nil
}

// Verify always succeeds if the shape is right: a mock proof has no
// cryptographic content to check.
func (c *Client) Verify(proof prover.Proof, _ prover.VerifyingKey) error {
	if len(proof.PublicValues) != claim.EncodedLen {
		return &prover.LocalVerifyFailedError{Cause: errMalformedPublicValues}
	}
	return nil
}
