package claim

import (
	"encoding/hex"
	"strings"

	"github.com/holiman/uint256"
)

// ProveRequest is the raw, externally supplied submission (spec §3).
type ProveRequest struct {
	SS58Address string `json:"ss58Address"`
	Signature   string `json:"signature"`
	EVMAddress  string `json:"evmAddress"`
	Challenge   string `json:"challenge"`
	Amount      string `json:"amount"`
}

// ProgramInput is what gets handed to the prover once a ProveRequest has
// passed validation (spec §3).
type ProgramInput struct {
	SubstrateAddress string
	Signature        [64]byte
	EVMAddress       [20]byte
	Amount           [32]byte
	Challenge        [32]byte
}

// Validate parses req into a ProgramInput, or returns the first *FieldError
// encountered. ss58Address is forwarded untouched — SS58 decoding happens
// only at the point of use (ss58.Decode), so a malformed address fails late
// as its own InvalidSubstrateAddress kind rather than here.
func Validate(req ProveRequest) (*ProgramInput, error) {
	if strings.TrimSpace(req.SS58Address) == "" {
		return nil, invalidField("ss58Address", "must not be empty")
	}

	sig, err := decodeFixedHex(req.Signature, 64)
	if err != nil {
		return nil, invalidField("signature", err.Error())
	}
	evmAddr, err := decodeFixedHex(req.EVMAddress, 20)
	if err != nil {
		return nil, invalidField("evmAddress", err.Error())
	}
	challenge, err := decodeFixedHex(req.Challenge, 32)
	if err != nil {
		return nil, invalidField("challenge", err.Error())
	}
	amount, err := decodeAmount(req.Amount)
	if err != nil {
		return nil, invalidField("amount", err.Error())
	}

	in := &ProgramInput{SubstrateAddress: req.SS58Address, Amount: amount}
	copy(in.Signature[:], sig)
	copy(in.EVMAddress[:], evmAddr)
	copy(in.Challenge[:], challenge)
	return in, nil
}

// decodeFixedHex strips an optional 0x/0X prefix, hex-decodes case
// insensitively, and requires the result to be exactly wantLen bytes.
func decodeFixedHex(s string, wantLen int) ([]byte, error) {
	if s == "" {
		return nil, errEmpty
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errNotHex
	}
	if len(b) != wantLen {
		return nil, lengthError(wantLen, len(b))
	}
	return b, nil
}

// decodeAmount requires req.Amount to be ASCII digits only (rejecting
// anything uint256.FromDecimal might otherwise tolerate, e.g. leading
// "+"/"-" or underscores) and parses it as an unsigned 256-bit integer,
// converting to its big-endian 32-byte form.
func decodeAmount(s string) ([32]byte, error) {
	var out [32]byte
	if s == "" {
		return out, errEmpty
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return out, errNotDecimal
		}
	}
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return out, errOverflow
	}
	return n.Bytes32(), nil
}
