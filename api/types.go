package api

import "time"

// jobStatus is the lifecycle stage of a submitted prove job (spec §3 Job).
// Transitions are strictly monotonic: Pending -> Running -> {Completed,
// Failed}; there are no back-transitions.
type jobStatus string

const (
	jobPending   jobStatus = "pending"
	jobRunning   jobStatus = "running"
	jobCompleted jobStatus = "completed"
	jobFailed    jobStatus = "failed"
)

// jobEntry is the Job Store's internal record for one submitted job.
type jobEntry struct {
	ID     string
	Status jobStatus

	// Populated only when Status == jobCompleted.
	ZKProof      string
	PublicValues string

	// Populated only when Status == jobFailed.
	Err string

	UpdatedAt time.Time
}

// clone returns a value copy of e, safe to hand to a caller outside the
// store's lock.
func (e jobEntry) clone() *jobEntry {
	c := e
	return &c
}

// submitRequest mirrors claim.ProveRequest over the wire (spec §6 POST /).
type submitRequest struct {
	SS58Address string `json:"ss58Address"`
	Signature   string `json:"signature"`
	EVMAddress  string `json:"evmAddress"`
	Challenge   string `json:"challenge"`
	Amount      string `json:"amount"`
}

// submitResponse is the 200 body for POST / (spec §6).
type submitResponse struct {
	JobID string `json:"jobId"`
}

// statusResponse is the 200 body for GET /status/{jobId} (spec §6). Fields
// are omitted when not applicable to the current status, so a pending job
// renders as just {"status":"pending"}.
type statusResponse struct {
	Status       jobStatus `json:"status"`
	ZKProof      string    `json:"zkProof,omitempty"`
	PublicValues string    `json:"publicValues,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// healthResponse is the 200 body for GET /health (spec §6).
type healthResponse struct {
	Status        string `json:"status"`
	ProverMode    string `json:"prover_mode"`
	VerifyProof   bool   `json:"verify_proof"`
	VerifyOnchain bool   `json:"verify_onchain"`
	Jobs          int    `json:"jobs"`
}
