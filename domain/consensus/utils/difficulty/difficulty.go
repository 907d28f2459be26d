package difficulty

import (
	"github.com/holiman/uint256"

	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
)

// CompactToTarget converts the compact representation of a difficulty target
// into a 256-bit unsigned integer. The compact representation packs a target
// into 32 bits: the top byte is a base-256 exponent and the low 23 bits are
// the mantissa, with bit 23 acting as the mantissa's sign bit.
//
// A set sign bit (isNegative) or a mantissa too large for the 256-bit field
// (isOverflow) both make the returned target unusable for consensus.
func CompactToTarget(compact uint32) (target *uint256.Int, isNegative bool, isOverflow bool) {
	mantissa := compact & 0x007fffff
	exponent := uint(compact >> 24)

	target = new(uint256.Int)
	if exponent <= 3 {
		target.SetUint64(uint64(mantissa >> (8 * (3 - exponent))))
	} else {
		target.SetUint64(uint64(mantissa))
		target.Lsh(target, 8*(exponent-3))
	}

	isNegative = mantissa != 0 && compact&0x00800000 != 0
	isOverflow = mantissa != 0 && (exponent > 34 ||
		(mantissa > 0xff && exponent > 33) ||
		(mantissa > 0xffff && exponent > 32))
	return target, isNegative, isOverflow
}

// TargetToCompact converts a 256-bit target into its compact representation.
// The mantissa is rounded down when the target does not fit in 23 bits, and
// an extra exponent step is taken whenever the mantissa's top bit would
// collide with the sign bit.
func TargetToCompact(target *uint256.Int) uint32 {
	size := uint32(target.BitLen()+7) / 8

	var compact uint64
	if size <= 3 {
		compact = target.Uint64() << (8 * (3 - size))
	} else {
		shifted := new(uint256.Int).Rsh(target, uint(8*(size-3)))
		compact = shifted.Uint64()
	}

	if compact&0x00800000 != 0 {
		compact >>= 8
		size++
	}

	return uint32(compact) | size<<24
}

// CalcWeightedTarget expands the given compact difficulty bits and scales the
// resulting target by the given stake weight, so that the chance of finding a
// kernel is proportional to the amount of coins staked. The multiplication
// wraps on 256-bit overflow; existing chain history depends on the truncating
// behavior, so it must not be widened.
func CalcWeightedTarget(bits uint32, weight uint64) (*uint256.Int, error) {
	target, isNegative, isOverflow := CompactToTarget(bits)
	if isNegative || isOverflow || target.IsZero() {
		return nil, ruleerrors.Errorf(ruleerrors.ErrBadDifficultyBits,
			"difficulty bits %08x don't expand to a usable target", bits)
	}

	weightedTarget := new(uint256.Int).SetUint64(weight)
	return weightedTarget.Mul(weightedTarget, target), nil
}

// GetDifficultyRatio returns the proof difficulty as a multiple of the
// minimum difficulty, normalizing the 3-byte mantissa to the canonical
// exponent of 29. The result is for display and statistics only and plays no
// part in consensus.
func GetDifficultyRatio(bits uint32) float64 {
	shift := (bits >> 24) & 0xff
	diff := float64(0x0000ffff) / float64(bits&0x00ffffff)

	for ; shift < 29; shift++ {
		diff *= 256.0
	}
	for ; shift > 29; shift-- {
		diff /= 256.0
	}

	return diff
}
