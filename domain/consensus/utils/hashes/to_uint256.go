package hashes

import (
	"github.com/holiman/uint256"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// ToUint256 returns the numeric value of the given hash, interpreting its
// bytes as an unsigned 256-bit big-endian integer. This is the interpretation
// under which kernel hashes are compared against targets.
func ToUint256(hash *externalapi.DomainHash) *uint256.Int {
	return new(uint256.Int).SetBytes(hash.ByteSlice())
}
