package model

import (
	"github.com/holiman/uint256"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// StakeValidator decides whether a coinstake transaction legitimately wins
// the right to extend the chain on top of a given index entry
type StakeValidator interface {
	// CheckProofOfStake validates the given coinstake transaction for a
	// candidate block with the given time and difficulty bits, connecting
	// on top of prevEntry. On success it returns the kernel hash and the
	// weighted target for the caller to persist in block metadata.
	CheckProofOfStake(prevEntry *externalapi.BlockIndexEntry, tx *externalapi.DomainTransaction,
		blockTime uint32, bits uint32) (kernelHash *externalapi.DomainHash, target *uint256.Int, err error)

	// CheckKernel tries a single candidate timestamp against an owned
	// outpoint. Used only when staking, never during validation.
	CheckKernel(prevEntry *externalapi.BlockIndexEntry, bits uint32, blockTime uint32,
		outpoint *externalapi.DomainOutpoint) (passed bool, kernelBlockTime uint32, err error)
}
