package chaincfg

// TimestampMaskChange activates a new stake timestamp mask from the given
// height onwards. Masks are of the form 2^k - 1, quantizing coinstake
// timestamps to a k-bit granularity.
type TimestampMaskChange struct {
	Height uint64
	Mask   uint32
}

// Params defines an Ember network by its consensus parameters.
type Params struct {
	// Name defines a human-readable identifier for the network
	Name string

	// StakeMinConfirmations is the number of confirmations a coin needs
	// before it may serve as a stake kernel
	StakeMinConfirmations uint32

	// MaxReorgDepth bounds how far back a spent coin may be replayed as a
	// stake kernel
	MaxReorgDepth uint32

	// TimestampMaskChanges holds the stake timestamp mask schedule in
	// ascending height order. The first entry must activate at height 0.
	TimestampMaskChanges []TimestampMaskChange
}

// StakeTimestampMask returns the stake timestamp mask active at the given
// height
func (p *Params) StakeTimestampMask(height uint64) uint32 {
	mask := p.TimestampMaskChanges[0].Mask
	for _, change := range p.TimestampMaskChanges[1:] {
		if height < change.Height {
			break
		}
		mask = change.Mask
	}
	return mask
}

// MainnetParams defines the network parameters for the main Ember network.
var MainnetParams = Params{
	Name:                  "ember-mainnet",
	StakeMinConfirmations: 225,
	MaxReorgDepth:         1024,
	TimestampMaskChanges: []TimestampMaskChange{
		{Height: 0, Mask: 0x0f},
	},
}

// TestnetParams defines the network parameters for the test Ember network.
var TestnetParams = Params{
	Name:                  "ember-testnet",
	StakeMinConfirmations: 225,
	MaxReorgDepth:         1024,
	TimestampMaskChanges: []TimestampMaskChange{
		{Height: 0, Mask: 0x0f},
	},
}

// SimnetParams defines the network parameters for the simulation network.
// It is intended for private use in staking simulations, so coins mature
// quickly and timestamps are only lightly quantized.
var SimnetParams = Params{
	Name:                  "ember-simnet",
	StakeMinConfirmations: 10,
	MaxReorgDepth:         16,
	TimestampMaskChanges: []TimestampMaskChange{
		{Height: 0, Mask: 0x03},
	},
}
