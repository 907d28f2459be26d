package model

import "github.com/emberchain/emberd/domain/consensus/model/externalapi"

// StakeStatistics provides read-only statistics over historical
// proof-of-stake blocks. Never consulted for acceptance decisions.
type StakeStatistics interface {
	// EstimateNetworkStakesPerSecond estimates how many stake kernels the
	// whole network tries per second, sampled over recent stake blocks
	// ending at the given tip
	EstimateNetworkStakesPerSecond(tip *externalapi.BlockIndexEntry) float64
}
