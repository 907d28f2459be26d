package stakestatistics_test

import (
	"math"
	"testing"

	"github.com/emberchain/emberd/domain/chaincfg"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/processes/stakestatistics"
)

var testParams = chaincfg.Params{
	Name:                  "ember-unittest",
	StakeMinConfirmations: 4,
	MaxReorgDepth:         8,
	TimestampMaskChanges: []chaincfg.TimestampMaskChange{
		{Height: 0, Mask: 0x0f},
	},
}

type fakeChain struct {
	entries []*externalapi.BlockIndexEntry
}

func (c *fakeChain) ByHeight(height uint64) (*externalapi.BlockIndexEntry, bool) {
	if height >= uint64(len(c.entries)) {
		return nil, false
	}
	return c.entries[height], true
}

func (c *fakeChain) Tip() (*externalapi.BlockIndexEntry, bool) {
	if len(c.entries) == 0 {
		return nil, false
	}
	return c.entries[len(c.entries)-1], true
}

func buildChain(numBlocks uint64, gapSeconds uint32, bits uint32, proofOfStake func(height uint64) bool) *fakeChain {
	chain := &fakeChain{}
	for height := uint64(0); height < numBlocks; height++ {
		chain.entries = append(chain.entries, &externalapi.BlockIndexEntry{
			Height:        height,
			Time:          1000 + uint32(height)*gapSeconds,
			Bits:          bits,
			StakeModifier: externalapi.NewZeroHash(),
			ProofOfStake:  proofOfStake(height),
		})
	}
	return chain
}

func estimate(chain *fakeChain) float64 {
	tip, _ := chain.Tip()
	return stakestatistics.New(&testParams, chain).EstimateNetworkStakesPerSecond(tip)
}

func TestEstimateUniformStakeChain(t *testing.T) {
	// 0x1d00ffff has a difficulty ratio of exactly 1. With every block a
	// stake block 16 seconds apart, the estimate collapses to
	// 2^32 / 16 * (mask + 1).
	chain := buildChain(10, 16, 0x1d00ffff, func(height uint64) bool { return height > 0 })

	expected := math.Pow(2, 32) / 16 * 16
	result := estimate(chain)
	if math.Abs(result-expected) > expected*1e-12 {
		t.Fatalf("expected estimate %f, instead found: %f", expected, result)
	}
}

func TestEstimateSkipsNonStakeBlocks(t *testing.T) {
	// Interleaved non-stake blocks must not contribute kernels and must
	// not break the time pairing: stake blocks at even heights 32 seconds
	// apart yield half the uniform-chain rate.
	chain := buildChain(11, 16, 0x1d00ffff, func(height uint64) bool {
		return height > 0 && height%2 == 0
	})

	expected := math.Pow(2, 32) / 32 * 16
	result := estimate(chain)
	if math.Abs(result-expected) > expected*1e-12 {
		t.Fatalf("expected estimate %f, instead found: %f", expected, result)
	}
}

func TestEstimateSampleWindow(t *testing.T) {
	// Only the most recent 72 stake blocks count. An old stretch of slow
	// blocks beyond the window must not drag the estimate down.
	slowThenFast := &fakeChain{}
	var blockTime uint32 = 1000
	for height := uint64(0); height < 200; height++ {
		if height < 100 {
			blockTime += 1600
		} else {
			blockTime += 16
		}
		slowThenFast.entries = append(slowThenFast.entries, &externalapi.BlockIndexEntry{
			Height:        height,
			Time:          blockTime,
			Bits:          0x1d00ffff,
			StakeModifier: externalapi.NewZeroHash(),
			ProofOfStake:  true,
		})
	}

	expected := math.Pow(2, 32) / 16 * 16
	result := estimate(slowThenFast)
	if math.Abs(result-expected) > expected*1e-12 {
		t.Fatalf("expected the slow stretch to fall outside the sample window, "+
			"expected %f, instead found: %f", expected, result)
	}
}

func TestEstimateDegenerateChains(t *testing.T) {
	// No stake blocks at all.
	workOnly := buildChain(10, 16, 0x1d00ffff, func(uint64) bool { return false })
	if result := estimate(workOnly); result != 0 {
		t.Fatalf("expected a zero estimate without stake blocks, instead found: %f", result)
	}

	// A single stake block has no inter-stake gap to divide by.
	singleStake := buildChain(10, 16, 0x1d00ffff, func(height uint64) bool { return height == 5 })
	if result := estimate(singleStake); result != 0 {
		t.Fatalf("expected a zero estimate with a single stake block, instead found: %f", result)
	}
}
