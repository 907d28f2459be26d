package externalapi

// BlockIndexEntry is the chain index's view of a connected block. Entries are
// owned by the chain index; this core only borrows them for the duration of a
// call. The back-link to the previous entry is Height-1 through the index
// rather than a pointer.
type BlockIndexEntry struct {
	Height uint64

	// Time is the block time in seconds since the epoch
	Time uint32

	// Bits is the compact representation of the block's difficulty target
	Bits uint32

	// StakeModifier is written exactly once, when the block is connected
	StakeModifier *DomainHash

	ProofOfStake bool
}
