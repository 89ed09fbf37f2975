// Package prover drives proof generation: it builds a ProgramInput, submits
// it to an SP1 Groth16 prover, and optionally runs the SDK's local verify
// (spec §4.D). The real SP1 SDK and its network backend are out-of-scope
// external collaborators (spec §1); Client is the boundary this package
// calls through.
package prover

import (
	"context"

	"github.com/tangle-network/migration-claim-prover/claim"
)

// ProvingKey and VerifyingKey are opaque, SDK-defined key material derived
// once per ELF by Setup.
type ProvingKey []byte
type VerifyingKey []byte

// Proof is the prover's output: the opaque Groth16 proof bytes and the
// ABI-encoded public values it committed.
type Proof struct {
	ProofBytes   []byte
	PublicValues []byte
}

// Client drives proof generation and local verification against a single
// fixed guest ELF.
type Client interface {
	// Setup derives the proving/verifying key pair for elf. Callers should
	// route this through a KeyCache rather than calling it per job.
	Setup(ctx context.Context, elf []byte) (ProvingKey, VerifyingKey, error)

	// Prove requests a Groth16 proof of input under pk, pinned to the
	// Mainnet proving domain (spec §4.D step 2, §9).
	Prove(ctx context.Context, pk ProvingKey, input claim.ProgramInput) (Proof, error)

	// Verify runs the SDK's own local verification of proof against vk.
	Verify(proof Proof, vk VerifyingKey) error
}
