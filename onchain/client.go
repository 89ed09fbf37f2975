// Package onchain issues read-only eth_call JSON-RPC requests against the
// SP1 verifier contract (spec §4.E) and the migration-claim contract's
// already-claimed status (spec §4.F). Both are out-of-scope external
// collaborators (spec §1); this package only models the boundary call.
package onchain

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	verifyProofArgs = mustArgs("bytes32", "bytes", "bytes")
	claimedArgs     = mustArgs("bytes32")

	verifyProofSelector = selector("verifyProof(bytes32,bytes,bytes)")
	claimedSelector     = selector("claimed(bytes32)")
)

func mustArgs(types ...string) abi.Arguments {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		args[i] = abi.Argument{Type: typ}
	}
	return args
}

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

// Client issues eth_call requests over plain JSON-RPC-over-HTTP, matching
// the protocol named in spec §4.E/§6 exactly (HTTP status, an "error"
// field, and a missing "result" field are each distinguished outcomes —
// a thin raw client makes that distinction direct, where ethclient's
// wrapped errors would blur it).
type Client struct {
	httpClient *http.Client
}

// New returns an onchain.Client.
func New() *Client {
	return &Client{httpClient: &http.Client{}}
}

// VerifyProof succeeds iff eth_call verifyProof(programVKey, publicValues,
// proofBytes) against verifierAddress does not revert (spec §4.E).
func (c *Client) VerifyProof(ctx context.Context, rpcURL string, verifierAddress common.Address, programVKey [32]byte, publicValues, proofBytes []byte) error {
	data, err := verifyProofArgs.Pack(programVKey, publicValues, proofBytes)
	if err != nil {
		return fmt.Errorf("encode verifyProof call: %w", err)
	}
	calldata := append(append([]byte{}, verifyProofSelector...), data...)

	_, err = c.ethCall(ctx, rpcURL, 10*time.Second, verifierAddress, calldata)
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(*jsonRPCError); ok {
		return &OnchainVerifyRevertedError{Message: rpcErr.field.Message}
	}
	return err
}

// ClaimStatus returns true iff the substrate account identified by pubkey
// has already claimed (spec §4.F): the contract's claimed(bytes32) return
// value is treated as a claimed amount, zero meaning "not claimed".
func (c *Client) ClaimStatus(ctx context.Context, rpcURL string, contractAddress common.Address, timeout time.Duration, pubkey [32]byte) (bool, error) {
	data, err := claimedArgs.Pack(pubkey)
	if err != nil {
		return false, &ClaimStatusUnavailableError{Cause: fmt.Errorf("encode claimed call: %w", err)}
	}
	calldata := append(append([]byte{}, claimedSelector...), data...)

	result, err := c.ethCall(ctx, rpcURL, timeout, contractAddress, calldata)
	if err != nil {
		return false, &ClaimStatusUnavailableError{Cause: err}
	}

	for _, b := range result {
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}

// rpcErrorField is the JSON-RPC "error" object, surfaced distinctly from
// HTTP-layer and envelope-parsing failures.
type rpcErrorField struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonRPCError struct {
	field *rpcErrorField
}

func (e *jsonRPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.field.Code, e.field.Message)
}

type jsonRPCRequestBody struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type callObject struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type jsonRPCResponseBody struct {
	Result *string        `json:"result"`
	Error  *rpcErrorField `json:"error"`
}

// ethCall issues a single eth_call against to with calldata data, block
// tag "latest", classifying failures exactly as spec §4.E names them.
func (c *Client) ethCall(ctx context.Context, rpcURL string, timeout time.Duration, to common.Address, data []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload := jsonRPCRequestBody{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_call",
		Params: []any{
			callObject{To: to.Hex(), Data: "0x" + hex.EncodeToString(data)},
			"latest",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RpcHttpError{Status: resp.StatusCode}
	}

	var rpcResp jsonRPCResponseBody
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, &RpcMalformedError{Cause: err}
	}
	if rpcResp.Error != nil {
		return nil, &jsonRPCError{field: rpcResp.Error}
	}
	if rpcResp.Result == nil {
		return nil, &RpcMalformedError{Cause: fmt.Errorf("missing result field")}
	}

	result, err := hex.DecodeString(strings.TrimPrefix(*rpcResp.Result, "0x"))
	if err != nil {
		return nil, &RpcMalformedError{Cause: err}
	}
	return result, nil
}
