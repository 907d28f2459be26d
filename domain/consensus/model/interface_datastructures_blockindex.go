package model

import "github.com/emberchain/emberd/domain/consensus/model/externalapi"

// BlockIndex represents the chain index of connected blocks. Entries are
// addressed by height; the entry for height h-1 is the back-link of the entry
// for height h.
type BlockIndex interface {
	// ByHeight returns the entry at the given height, or false if the
	// height is above the current tip
	ByHeight(height uint64) (*externalapi.BlockIndexEntry, bool)

	// Tip returns the entry of the highest connected block, or false if
	// the chain is empty
	Tip() (*externalapi.BlockIndexEntry, bool)
}
