package spentcoinstore

import (
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/utxo"
	"github.com/emberchain/emberd/infrastructure/db/database"
)

var bucket = database.MakeBucket([]byte("spent-coins"))

// SpentCoinStore persists recently spent coins, keyed by outpoint. Retention
// (purging entries that fall out of the reorg window) is driven by the
// block-connection orchestrator; the store itself never drops data.
type SpentCoinStore struct {
	db database.DataAccessor
}

// New instantiates a new SpentCoinStore over the given database
func New(db database.DataAccessor) *SpentCoinStore {
	return &SpentCoinStore{db: db}
}

// Read returns the spent coin recorded for the given outpoint, or false if
// the store does not hold it
func (scs *SpentCoinStore) Read(outpoint *externalapi.DomainOutpoint) (*externalapi.SpentCoin, bool, error) {
	key, err := outpointKey(outpoint)
	if err != nil {
		return nil, false, err
	}

	serializedSpentCoin, err := scs.db.Get(key)
	if database.IsNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	spentCoin, err := utxo.DeserializeSpentCoin(serializedSpentCoin)
	if err != nil {
		return nil, false, err
	}
	return spentCoin, true, nil
}

// Write records the given spent coin for the given outpoint
func (scs *SpentCoinStore) Write(outpoint *externalapi.DomainOutpoint, spentCoin *externalapi.SpentCoin) error {
	key, err := outpointKey(outpoint)
	if err != nil {
		return err
	}

	serializedSpentCoin, err := utxo.SerializeSpentCoin(spentCoin)
	if err != nil {
		return err
	}
	return scs.db.Put(key, serializedSpentCoin)
}

// Delete removes the entry for the given outpoint, if any. Used by the
// orchestrator when an entry falls out of the reorg window.
func (scs *SpentCoinStore) Delete(outpoint *externalapi.DomainOutpoint) error {
	key, err := outpointKey(outpoint)
	if err != nil {
		return err
	}
	return scs.db.Delete(key)
}

func outpointKey(outpoint *externalapi.DomainOutpoint) (*database.Key, error) {
	serializedOutpoint, err := utxo.SerializeOutpoint(outpoint)
	if err != nil {
		return nil, err
	}
	return bucket.Key(serializedOutpoint), nil
}

var _ model.SpentCoinStore = &SpentCoinStore{}
