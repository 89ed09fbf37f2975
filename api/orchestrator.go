package api

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/claim/ss58"
	"github.com/tangle-network/migration-claim-prover/log"
	"github.com/tangle-network/migration-claim-prover/prover"
)

// runProveJob drives spec §4.D end to end for one job, on its own
// goroutine per spec §5 (one blocking worker per job, not a fixed pool).
// It always terminates the job in Completed or Failed; a panic anywhere
// in the prove path is recovered and converted to a synthetic Failed
// message, matching spec §4.H/§7's "worker panic... server does not
// crash" guarantee.
func (a *API) runProveJob(jobID string, input claim.ProgramInput) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw(fmt.Errorf("%v", r), "prove job panicked: "+jobID)
			a.jobs.setFailed(jobID, proveJobFailure(r))
		}
	}()

	a.jobs.setRunning(jobID)

	ctx := context.Background()

	pk, vk, err := a.keyCache.SetupCached(ctx, a.proverClient, a.elf)
	if err != nil {
		a.jobs.setFailed(jobID, prover.WrapError(err).Error())
		return
	}

	proof, err := a.proverClient.Prove(ctx, pk, input)
	if err != nil {
		a.jobs.setFailed(jobID, prover.WrapError(err).Error())
		return
	}

	if a.config.VerifyProof {
		if err := a.proverClient.Verify(proof, vk); err != nil {
			a.jobs.setFailed(jobID, err.Error())
			return
		}
	}

	log.Infow("prove job completed",
		"jobId", jobID,
		"publicValues", hexEncode(proof.PublicValues),
	)

	if a.config.VerifyOnchain {
		if err := a.verifyOnchain(ctx, input, proof); err != nil {
			a.jobs.setFailed(jobID, err.Error())
			return
		}
	}

	a.jobs.setCompleted(jobID, hexEncode(proof.ProofBytes), hexEncode(proof.PublicValues))
}

// verifyOnchain re-derives PublicValues from input (spec §4.C/§4.B) and
// delegates the eth_call to the onchain client (spec §4.D step 9, §4.E).
func (a *API) verifyOnchain(ctx context.Context, input claim.ProgramInput, proof prover.Proof) error {
	pubkey, err := ss58.Decode(input.SubstrateAddress)
	if err != nil {
		return err
	}
	values := claim.PublicValues{
		Pubkey:     pubkey,
		EVMAddress: input.EVMAddress,
		Amount:     input.Amount,
		Challenge:  input.Challenge,
	}
	encoded, err := claim.Encode(values)
	if err != nil {
		return err
	}

	return a.onchain.VerifyProof(ctx, a.config.OnchainVerify.RPCURL, a.config.OnchainVerify.VerifierAddress, a.config.OnchainVerify.ProgramVKey, encoded, proof.ProofBytes)
}

func hexEncode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
