package utxo

import (
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// Set is an in-memory UTXO set. The chain-state owner adds a coin when the
// creating transaction connects, marks it spent when a later transaction
// consumes it, and removes it once the spend is final.
type Set struct {
	coins map[externalapi.DomainOutpoint]*externalapi.Coin
}

// NewSet instantiates a new empty Set
func NewSet() *Set {
	return &Set{
		coins: make(map[externalapi.DomainOutpoint]*externalapi.Coin),
	}
}

// Add adds the given coin under the given outpoint, overwriting any previous
// coin for that outpoint
func (s *Set) Add(outpoint *externalapi.DomainOutpoint, coin *externalapi.Coin) {
	s.coins[*outpoint] = coin
}

// Spend marks the coin under the given outpoint as spent. Returns false if
// the outpoint is not in the set.
func (s *Set) Spend(outpoint *externalapi.DomainOutpoint) bool {
	coin, ok := s.coins[*outpoint]
	if !ok {
		return false
	}
	coin.Spent = true
	return true
}

// Remove purges the coin under the given outpoint from the set
func (s *Set) Remove(outpoint *externalapi.DomainOutpoint) {
	delete(s.coins, *outpoint)
}

// GetCoin returns the coin associated with the given outpoint, or false if
// the outpoint is not in the set
func (s *Set) GetCoin(outpoint *externalapi.DomainOutpoint) (*externalapi.Coin, bool) {
	coin, ok := s.coins[*outpoint]
	return coin, ok
}

var _ model.UTXOSet = &Set{}
