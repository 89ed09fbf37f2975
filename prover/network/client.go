// Package network implements prover.Client against the real SP1 network
// prover: a remote proving service reached over TLS (spec §1, out of
// scope as a collaborator — this package only models the boundary call).
// There is no published Go SDK for it in this module's dependency set, so
// the wire protocol here is a plain JSON-over-HTTPS request/response,
// authenticated with a bearer credential derived from NETWORK_PRIVATE_KEY.
package network

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/prover"
)

// proofMode is pinned to Mainnet per spec §4.D step 2 / §9: the guest
// program bakes in a domain tag, and a mismatch silently changes the
// verifying key. This is never configurable.
const proofMode = "mainnet"

var (
	sharedClientOnce sync.Once
	sharedHTTPClient *http.Client
)

// sharedClient lazily builds the process-wide TLS-backed HTTP client used
// by every network.Client. The sync.Once guard is the Go analogue of the
// "install the crypto provider exactly once" requirement spec §9 calls out
// for the SP1 SDK: net/http needs no separate provider install, but the
// one-time construction of the shared *http.Client still only happens once.
func sharedClient() *http.Client {
	sharedClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Timeout: 5 * time.Minute, // proving can take minutes (spec §5)
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		}
	})
	return sharedHTTPClient
}

// Client drives proof generation against a remote SP1 network prover.
type Client struct {
	endpoint   string
	privateKey string
	httpClient *http.Client
}

// New returns a network.Client targeting endpoint, authenticated with
// privateKey as a bearer credential.
func New(endpoint, privateKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		privateKey: privateKey,
		httpClient: sharedClient(),
	}
}

type setupRequest struct {
	ELF []byte `json:"elf"`
}

type setupResponse struct {
	ProvingKey   []byte `json:"provingKey"`
	VerifyingKey []byte `json:"verifyingKey"`
}

// Setup derives (pk, vk) for elf. Callers should route this through a
// prover.KeyCache rather than calling it per job.
func (c *Client) Setup(ctx context.Context, elf []byte) (prover.ProvingKey, prover.VerifyingKey, error) {
	var resp setupResponse
	if err := c.call(ctx, "/setup", setupRequest{ELF: elf}, &resp); err != nil {
		return nil, nil, prover.WrapError(err)
	}
	return resp.ProvingKey, resp.VerifyingKey, nil
}

type proveRequest struct {
	ProvingKey  []byte `json:"provingKey"`
	Mode        string `json:"mode"`
	Input       proveInput `json:"input"`
}

type proveInput struct {
	SubstrateAddress string `json:"substrateAddress"`
	Signature        []byte `json:"signature"`
	EVMAddress       []byte `json:"evmAddress"`
	Amount           []byte `json:"amount"`
	Challenge        []byte `json:"challenge"`
}

type proveResponse struct {
	ProofBytes   []byte `json:"proofBytes"`
	PublicValues []byte `json:"publicValues"`
}

// Prove requests a Groth16 proof, pinned to the Mainnet proving domain.
func (c *Client) Prove(ctx context.Context, pk prover.ProvingKey, input claim.ProgramInput) (prover.Proof, error) {
	req := proveRequest{
		ProvingKey: pk,
		Mode:       proofMode,
		Input: proveInput{
			SubstrateAddress: input.SubstrateAddress,
			Signature:        input.Signature[:],
			EVMAddress:       input.EVMAddress[:],
			Amount:           input.Amount[:],
			Challenge:        input.Challenge[:],
		},
	}

	var resp proveResponse
	if err := c.call(ctx, "/prove", req, &resp); err != nil {
		return prover.Proof{}, prover.WrapError(err)
	}
	return prover.Proof{ProofBytes: resp.ProofBytes, PublicValues: resp.PublicValues}, nil
}

type verifyRequest struct {
	ProofBytes   []byte `json:"proofBytes"`
	PublicValues []byte `json:"publicValues"`
	VerifyingKey []byte `json:"verifyingKey"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Verify runs the SDK's own local verification of proof against vk.
func (c *Client) Verify(proof prover.Proof, vk prover.VerifyingKey) error {
	req := verifyRequest{
		ProofBytes:   proof.ProofBytes,
		PublicValues: proof.PublicValues,
		VerifyingKey: vk,
	}

	var resp verifyResponse
	if err := c.call(context.Background(), "/verify", req, &resp); err != nil {
		return &prover.LocalVerifyFailedError{Cause: err}
	}
	if !resp.Valid {
		return &prover.LocalVerifyFailedError{Cause: fmt.Errorf("%s", resp.Reason)}
	}
	return nil
}

func (c *Client) call(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.privateKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("network prover %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}
