package model

import "github.com/emberchain/emberd/domain/consensus/model/externalapi"

// SpentCoinStore represents a store of coins that were recently spent,
// retrievable for a bounded reorg window after they leave the live UTXO set.
// Retention is the store's own concern; this core only ever reads it during
// validation.
type SpentCoinStore interface {
	// Read returns the spent coin recorded for the given outpoint, or
	// false if the store does not hold it
	Read(outpoint *externalapi.DomainOutpoint) (*externalapi.SpentCoin, bool, error)

	// Write records the given spent coin for the given outpoint
	Write(outpoint *externalapi.DomainOutpoint, spentCoin *externalapi.SpentCoin) error
}
