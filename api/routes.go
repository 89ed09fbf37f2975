package api

import "github.com/tangle-network/migration-claim-prover/log"

const (
	// SubmitEndpoint accepts a ProveRequest and starts a prove job
	// (spec §6 POST /).
	SubmitEndpoint = "/"

	// StatusJobIDParam is the URL parameter carrying a job id.
	StatusJobIDParam = "jobId"
	// StatusEndpoint reports a job's current status (spec §6 GET /status/{jobId}).
	StatusEndpoint = "/status/{" + StatusJobIDParam + "}"

	// HealthEndpoint reports service liveness and configuration (spec §6 GET /health).
	HealthEndpoint = "/health"
)

// registerHandlers wires the three endpoints spec §4.I/§6 name onto the
// router, grounded on the sequencer's registerHandlers log-then-mount style.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", SubmitEndpoint, "method", "POST")
	a.router.Post(SubmitEndpoint, a.submit)

	log.Infow("register handler", "endpoint", StatusEndpoint, "method", "GET")
	a.router.Get(StatusEndpoint, a.status)

	log.Infow("register handler", "endpoint", HealthEndpoint, "method", "GET")
	a.router.Get(HealthEndpoint, a.health)
}
