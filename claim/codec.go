package claim

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// PublicValues is the tuple committed by the zkVM guest, ABI-encoded as the
// prover's public output (spec §3/§4.B): pubkey, evmAddress, amount,
// challenge, each a fixed-size ABI head item — no dynamic offsets, so the
// encoding is always exactly 128 bytes.
type PublicValues struct {
	Pubkey     [32]byte
	EVMAddress [20]byte
	Amount     [32]byte
	Challenge  [32]byte
}

// EncodedLen is the byte length of an ABI-encoded PublicValues: four
// 32-byte head slots, address left-padded like the other fixed types.
const EncodedLen = 128

var publicValuesArgs = mustPublicValuesArgs()

func mustPublicValuesArgs() abi.Arguments {
	bytes32Type, err := abi.NewType("bytes32", "", nil)
	if err != nil {
		panic(err)
	}
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{
		{Type: bytes32Type},
		{Type: addressType},
		{Type: uint256Type},
		{Type: bytes32Type},
	}
}

// Encode ABI-encodes v as the (bytes32,address,uint256,bytes32) tuple named
// in spec §4.B, byte-exactly matching what the guest program commits.
func Encode(v PublicValues) ([]byte, error) {
	amount := new(big.Int).SetBytes(v.Amount[:])
	return publicValuesArgs.Pack(v.Pubkey, common.BytesToAddress(v.EVMAddress[:]), amount, v.Challenge)
}

// Decode is the inverse of Encode, used only for logging/diagnostics — the
// canonical source of committed values is the prover's own output, never
// this decoder (spec §4.B).
func Decode(data []byte) (PublicValues, error) {
	var out PublicValues
	values, err := publicValuesArgs.Unpack(data)
	if err != nil {
		return out, err
	}
	pubkey := values[0].([32]byte)
	addr := values[1].(common.Address)
	amount := values[2].(*big.Int)
	challenge := values[3].([32]byte)

	out.Pubkey = pubkey
	copy(out.EVMAddress[:], addr[:])
	amountBytes := amount.Bytes()
	copy(out.Amount[32-len(amountBytes):], amountBytes)
	out.Challenge = challenge
	return out, nil
}
