package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tangle-network/migration-claim-prover/claim"
	"github.com/tangle-network/migration-claim-prover/prover"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupSuccess(t *testing.T) {
	c := qt.New(t)

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		c.Assert(r.URL.Path, qt.Equals, "/setup")
		c.Assert(r.Header.Get("Authorization"), qt.Equals, "Bearer test-key")
		_ = json.NewEncoder(w).Encode(setupResponse{
			ProvingKey:   []byte("pk"),
			VerifyingKey: []byte("vk"),
		})
	})

	client := New(srv.URL, "test-key")
	pk, vk, err := client.Setup(t.Context(), []byte("elf"))
	c.Assert(err, qt.IsNil)
	c.Assert(pk, qt.DeepEquals, prover.ProvingKey("pk"))
	c.Assert(vk, qt.DeepEquals, prover.VerifyingKey("vk"))
}

func TestSetupTransportError(t *testing.T) {
	c := qt.New(t)

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client := New(srv.URL, "test-key")
	_, _, err := client.Setup(t.Context(), []byte("elf"))
	c.Assert(err, qt.Not(qt.IsNil))
	var proverErr *prover.Error
	c.Assert(err, qt.ErrorAs, &proverErr)
}

func TestProveSendsMainnetMode(t *testing.T) {
	c := qt.New(t)

	var gotReq proveRequest
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		c.Assert(r.URL.Path, qt.Equals, "/prove")
		c.Assert(json.NewDecoder(r.Body).Decode(&gotReq), qt.IsNil)
		_ = json.NewEncoder(w).Encode(proveResponse{
			ProofBytes:   []byte("proof"),
			PublicValues: []byte("pv"),
		})
	})

	client := New(srv.URL, "test-key")
	input := claim.ProgramInput{SubstrateAddress: "5Grw..."}
	proof, err := client.Prove(t.Context(), prover.ProvingKey("pk"), input)
	c.Assert(err, qt.IsNil)
	c.Assert(proof.ProofBytes, qt.DeepEquals, []byte("proof"))
	c.Assert(proof.PublicValues, qt.DeepEquals, []byte("pv"))
	c.Assert(gotReq.Mode, qt.Equals, "mainnet")
	c.Assert(gotReq.Input.SubstrateAddress, qt.Equals, "5Grw...")
}

func TestVerifySuccess(t *testing.T) {
	c := qt.New(t)

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		c.Assert(r.URL.Path, qt.Equals, "/verify")
		_ = json.NewEncoder(w).Encode(verifyResponse{Valid: true})
	})

	client := New(srv.URL, "test-key")
	err := client.Verify(prover.Proof{ProofBytes: []byte("proof")}, prover.VerifyingKey("vk"))
	c.Assert(err, qt.IsNil)
}

func TestVerifyRejected(t *testing.T) {
	c := qt.New(t)

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(verifyResponse{Valid: false, Reason: "mismatched public values"})
	})

	client := New(srv.URL, "test-key")
	err := client.Verify(prover.Proof{ProofBytes: []byte("proof")}, prover.VerifyingKey("vk"))
	c.Assert(err, qt.Not(qt.IsNil))
	var verifyErr *prover.LocalVerifyFailedError
	c.Assert(err, qt.ErrorAs, &verifyErr)
}
