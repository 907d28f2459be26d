package stakestatistics

import (
	"github.com/emberchain/emberd/domain/chaincfg"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/difficulty"
)

// sampleSize is the number of recent stake blocks the estimator averages
// over. Roughly an hour of blocks on mainnet.
const sampleSize = 72

type stakeStatistics struct {
	params     *chaincfg.Params
	blockIndex model.BlockIndex
}

// New instantiates a new StakeStatistics
func New(params *chaincfg.Params, blockIndex model.BlockIndex) model.StakeStatistics {
	return &stakeStatistics{
		params:     params,
		blockIndex: blockIndex,
	}
}

// EstimateNetworkStakesPerSecond walks back from the given tip over the most
// recent stake blocks and divides the kernels each block's difficulty implies
// by the time that elapsed between consecutive stake blocks. Each unit of
// difficulty stands for 2^32 expected hash attempts, and since the timestamp
// mask leaves only every (mask+1)-th second eligible, a network that covers
// the eligible timestamps tries mask+1 kernels per wall-clock second.
func (s *stakeStatistics) EstimateNetworkStakesPerSecond(tip *externalapi.BlockIndexEntry) float64 {
	var kernelsTried float64
	var stakesTime float64

	var laterStake *externalapi.BlockIndexEntry
	stakesHandled := 0

	entry := tip
	for entry != nil && stakesHandled < sampleSize {
		if entry.ProofOfStake {
			if laterStake != nil {
				kernelsTried += difficulty.GetDifficultyRatio(laterStake.Bits) * 4294967296.0
				stakesTime += float64(laterStake.Time) - float64(entry.Time)
				stakesHandled++
			}
			laterStake = entry
		}
		if entry.Height == 0 {
			break
		}
		previous, ok := s.blockIndex.ByHeight(entry.Height - 1)
		if !ok {
			break
		}
		entry = previous
	}

	if stakesTime <= 0 {
		return 0
	}

	result := kernelsTried / stakesTime
	result *= float64(s.params.StakeTimestampMask(tip.Height) + 1)
	return result
}
