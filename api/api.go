// Package api implements the HTTP surface spec §4.I/§6 names: three
// endpoints (submit, status, health) sharing a job store, a prover client,
// and an on-chain client, grounded on the pack's api.API/initRouter
// split (api/api.go, api/middleware.go).
package api

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tangle-network/migration-claim-prover/config"
	"github.com/tangle-network/migration-claim-prover/log"
	"github.com/tangle-network/migration-claim-prover/onchain"
	"github.com/tangle-network/migration-claim-prover/prover"
)

const maxRequestBodyLog = 512

// Config carries everything the API needs to serve requests: the
// resolved service configuration plus the collaborators the orchestrator
// calls through (spec §4.H/§4.D/§4.E/§4.F).
type Config struct {
	Service *config.Config

	ProverClient prover.Client
	ELF          []byte
	KeyCacheSize int

	Onchain *onchain.Client
}

// API is the HTTP surface: a chi router plus the shared state every
// handler reads (spec §9 "a single logical store shared by the HTTP
// handlers and the worker tasks").
type API struct {
	router *chi.Mux

	config      *config.Config
	claimStatus *config.ClaimContractConfig

	jobs         *jobsStore
	proverClient prover.Client
	elf          []byte
	keyCache     *prover.KeyCache
	onchain      *onchain.Client
}

// New constructs an API and its router, ready to be served with
// http.ListenAndServe. It does not itself start listening — that is the
// caller's responsibility (cmd/prover-api/main.go), matching the
// teacher's separation between API construction and server bootstrap.
func New(conf Config) (*API, error) {
	if conf.Service == nil {
		return nil, fmt.Errorf("missing service configuration")
	}
	if conf.ProverClient == nil {
		return nil, fmt.Errorf("missing prover client")
	}
	if len(conf.ELF) == 0 {
		return nil, fmt.Errorf("missing guest ELF")
	}
	if conf.Onchain == nil {
		conf.Onchain = onchain.New()
	}

	keyCacheSize := conf.KeyCacheSize
	if keyCacheSize <= 0 {
		keyCacheSize = 1 // a single fixed ELF per process (spec §4.D step 3)
	}

	a := &API{
		config:       conf.Service,
		claimStatus:  conf.Service.ClaimStatus,
		jobs:         newJobsStore(),
		proverClient: conf.ProverClient,
		elf:          conf.ELF,
		keyCache:     prover.NewKeyCache(keyCacheSize),
		onchain:      conf.Onchain,
	}

	a.initRouter()
	return a, nil
}

// Router returns the chi router, exposed for tests and for the server
// bootstrap in cmd/prover-api.
func (a *API) Router() *chi.Mux {
	return a.router
}

// initRouter builds the middleware chain and mounts the handlers,
// grounded on the sequencer's api.initRouter (CORS, logging, recoverer,
// timeout) generalized to this service's allow-list (spec §6 CORS).
func (a *API) initRouter() {
	a.router = chi.NewRouter()

	origins := a.config.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	a.router.Use(loggingMiddleware(maxRequestBodyLog))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(5 * time.Minute))

	a.registerHandlers()

	log.Infow("api router initialized", "routes", 3)
}
