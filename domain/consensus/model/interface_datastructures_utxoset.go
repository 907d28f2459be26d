package model

import "github.com/emberchain/emberd/domain/consensus/model/externalapi"

// UTXOSet represents the live set of unspent transaction outputs
type UTXOSet interface {
	// GetCoin returns the coin associated with the given outpoint, or
	// false if the outpoint is not in the set. The returned coin may be
	// flagged spent when the spending transaction is connected but the
	// coin has not yet been purged.
	GetCoin(outpoint *externalapi.DomainOutpoint) (*externalapi.Coin, bool)
}
