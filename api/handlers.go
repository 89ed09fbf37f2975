package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/claim/ss58"
)

// submit implements spec §4.H's accept path: validate, optional
// already-claimed gate, mint a job id, dispatch the prove in the
// background, and respond immediately with the job id.
func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}

	input, err := claim.Validate(claim.ProveRequest{
		SS58Address: req.SS58Address,
		Signature:   req.Signature,
		EVMAddress:  req.EVMAddress,
		Challenge:   req.Challenge,
		Amount:      req.Amount,
	})
	if err != nil {
		ErrInvalidField.WithErr(err).Write(w)
		return
	}

	if a.claimStatus != nil {
		pubkey, err := ss58.Decode(input.SubstrateAddress)
		if err != nil {
			ErrInvalidSubstrateAddr.WithErr(err).Write(w)
			return
		}
		claimed, err := a.checkAlreadyClaimed(r.Context(), pubkey)
		if err != nil {
			ErrClaimStatusUnavailable.WithErr(err).Write(w)
			return
		}
		if claimed {
			ErrAlreadyClaimed.Write(w)
			return
		}
	}

	jobID := uuid.NewString()
	a.jobs.insert(jobID)

	go a.runProveJob(jobID, *input)

	httpWriteJSON(w, submitResponse{JobID: jobID})
}

// checkAlreadyClaimed delegates to the onchain claim-status client (spec
// §4.F). This is the hard-gate policy spec §9's Open Question resolves in
// favor of: a ClaimStatusUnavailable error here aborts the submission
// rather than silently proceeding (see DESIGN.md).
func (a *API) checkAlreadyClaimed(ctx context.Context, pubkey [32]byte) (bool, error) {
	return a.onchain.ClaimStatus(ctx, a.config.ClaimStatus.RPCURL, a.config.ClaimStatus.ContractAddress, a.config.ClaimStatus.Timeout, pubkey)
}

// status implements spec §4.H's status path: GET /status/{jobId}.
func (a *API) status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, StatusJobIDParam)

	entry, ok := a.jobs.get(jobID)
	if !ok {
		ErrJobNotFound.Write(w)
		return
	}

	resp := statusResponse{Status: entry.Status}
	switch entry.Status {
	case jobCompleted:
		resp.ZKProof = entry.ZKProof
		resp.PublicValues = entry.PublicValues
	case jobFailed:
		resp.Error = entry.Err
	}
	httpWriteJSON(w, resp)
}

// health implements spec §6 GET /health.
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	httpWriteJSON(w, healthResponse{
		Status:        "ok",
		ProverMode:    a.config.ProverMode,
		VerifyProof:   a.config.VerifyProof,
		VerifyOnchain: a.config.VerifyOnchain,
		Jobs:          a.jobs.count(),
	})
}

// proveJobFailure turns a panic recovered from runProveJob into the
// synthetic Failed message spec §4.H / §7 name ("Job join error: <cause>").
func proveJobFailure(recovered any) string {
	return fmt.Sprintf("Job join error: %v", recovered)
}
