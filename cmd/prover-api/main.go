package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tangle-network/migration-claim-prover/api"
	"github.com/tangle-network/migration-claim-prover/config"
	"github.com/tangle-network/migration-claim-prover/internal"
	"github.com/tangle-network/migration-claim-prover/log"
	"github.com/tangle-network/migration-claim-prover/onchain"
	"github.com/tangle-network/migration-claim-prover/prover"
	"github.com/tangle-network/migration-claim-prover/prover/elf"
	"github.com/tangle-network/migration-claim-prover/prover/mock"
	"github.com/tangle-network/migration-claim-prover/prover/network"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.LogLevel, cfg.LogOutput, nil)
	log.Infow("starting prover-api", "version", internal.Version, "port", cfg.Port, "proverMode", cfg.ProverMode)

	a, err := api.New(api.Config{
		Service:      cfg,
		ProverClient: newProverClient(cfg),
		ELF:          elf.Bytes(),
		Onchain:      onchain.New(),
	})
	if err != nil {
		log.Fatalf("failed to construct API: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: a.Router(),
	}

	go func() {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Infow("received signal, shutting down", "signal", sig.String())
}

// newProverClient selects the prover.Client implementation per spec §4.D /
// §6: the real SP1 network backend by default, or the in-process mock
// when SP1_PROVER=mock (config.Load already enforces ALLOW_MOCK=true as a
// precondition for that mode).
func newProverClient(cfg *config.Config) prover.Client {
	if cfg.ProverMode == "mock" {
		return mock.New()
	}
	return network.New(networkEndpoint(), cfg.NetworkPrivateKey)
}

// networkEndpoint is the SP1 network prover's fixed Mainnet proving
// endpoint (spec §4.D step 2 / §9: never configurable, since it pins the
// proving domain).
func networkEndpoint() string {
	return "https://rpc.production.succinct.xyz"
}
