// Package elf embeds the migration-claim guest program binary, the
// zkVM artifact this service treats as a black-box prover (spec §1).
package elf

import _ "embed"

//go:embed migration-claim.elf
var bytes []byte

// Bytes returns the embedded guest ELF. Its digest is the cache key
// prover.KeyCache uses for (provingKey, verifyingKey) reuse (spec §4.D
// step 3).
func Bytes() []byte {
	return bytes
}
