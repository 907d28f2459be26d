package pos

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/chaincfg"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/difficulty"
	"github.com/emberchain/emberd/domain/consensus/utils/hashes"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
)

// CalcKernelHash computes the kernel proof hash for a candidate coinstake:
//
//	hash(stakeModifier || kernelBlockTime || outpoint.txid || outpoint.index || blockTime)
//
// The stake modifier scrambles the computation so that a coin owner cannot
// precompute future proofs at the time the coin confirms. The kernel block
// time and outpoint reduce the chance of different stakers producing the same
// kernel. Block and transaction hashes must not enter this computation, as
// they can be reground in vast quantities, degrading the system back into
// proof-of-work.
func CalcKernelHash(stakeModifier *externalapi.DomainHash, kernelBlockTime uint32,
	outpoint *externalapi.DomainOutpoint, blockTime uint32) *externalapi.DomainHash {

	writer := hashes.NewHashWriter()
	writer.InfallibleWrite(stakeModifier.ByteSlice())
	err := serialization.WriteElements(writer, kernelBlockTime, &outpoint.TransactionID, outpoint.Index, blockTime)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
	}
	return writer.Finalize()
}

// CalcStakeModifier computes the stake modifier for the block whose kernel
// hash is given and whose predecessor is prevEntry. The genesis block's
// modifier is all zeroes; every other modifier chains the predecessor's
// modifier with the new block's kernel hash, newest value first. Each
// modifier therefore depends on information that does not exist until its
// predecessor block does.
func CalcStakeModifier(prevEntry *externalapi.BlockIndexEntry, kernelHash *externalapi.DomainHash) *externalapi.DomainHash {
	if prevEntry == nil {
		return externalapi.NewZeroHash()
	}

	writer := hashes.NewHashWriter()
	writer.InfallibleWrite(kernelHash.ByteSlice())
	writer.InfallibleWrite(prevEntry.StakeModifier.ByteSlice())
	return writer.Finalize()
}

// CheckKernelHashWithTarget is the proof-of-stake acceptance predicate: the
// kernel hash, read as an unsigned 256-bit big-endian number, must not exceed
// the weighted target.
func CheckKernelHashWithTarget(weightedTarget *uint256.Int, kernelHash *externalapi.DomainHash) bool {
	return hashes.ToUint256(kernelHash).Cmp(weightedTarget) <= 0
}

// CheckStakeKernelHash builds the kernel hash and weighted target for the
// given inputs and checks the hash against the target. The hash and target
// are returned even when the check fails so that callers can log and persist
// them.
func CheckStakeKernelHash(prevEntry *externalapi.BlockIndexEntry, bits uint32, kernelBlockTime uint32,
	amount int64, outpoint *externalapi.DomainOutpoint, blockTime uint32) (
	passed bool, kernelHash *externalapi.DomainHash, target *uint256.Int, err error) {

	if blockTime < kernelBlockTime {
		return false, nil, nil, ruleerrors.Errorf(ruleerrors.ErrFutureKernelTimestamp,
			"candidate time %d precedes kernel block time %d", blockTime, kernelBlockTime)
	}

	target, err = difficulty.CalcWeightedTarget(bits, uint64(amount))
	if err != nil {
		return false, nil, nil, err
	}

	kernelHash = CalcKernelHash(prevEntry.StakeModifier, kernelBlockTime, outpoint, blockTime)
	return CheckKernelHashWithTarget(target, kernelHash), kernelHash, target, nil
}

// CheckCoinStakeTimestamp returns whether the given coinstake timestamp is
// quantized to the granularity required at the given height
func CheckCoinStakeTimestamp(params *chaincfg.Params, height uint64, blockTime uint32) bool {
	return blockTime&params.StakeTimestampMask(height) == 0
}
