package main

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/chaincfg"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/processes/stakestatistics"
	"github.com/emberchain/emberd/domain/consensus/processes/stakevalidator"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
	"github.com/emberchain/emberd/domain/consensus/utils/pos"
	"github.com/emberchain/emberd/domain/consensus/utils/utxo"
)

// maxCandidatesPerBlock caps the timestamp search for a single block, so that
// an unrealistic difficulty setting fails loudly instead of spinning forever.
const maxCandidatesPerBlock = 1 << 24

const simulationStartTime uint32 = 1600000000

// simChain is an in-memory block index for the simulated chain.
type simChain struct {
	entries []*externalapi.BlockIndexEntry
}

func (c *simChain) ByHeight(height uint64) (*externalapi.BlockIndexEntry, bool) {
	if height >= uint64(len(c.entries)) {
		return nil, false
	}
	return c.entries[height], true
}

func (c *simChain) Tip() (*externalapi.BlockIndexEntry, bool) {
	if len(c.entries) == 0 {
		return nil, false
	}
	return c.entries[len(c.entries)-1], true
}

func (c *simChain) appendEntry(entry *externalapi.BlockIndexEntry) {
	c.entries = append(c.entries, entry)
}

var _ model.BlockIndex = &simChain{}

// memorySpentCoinStore keeps spent coins in a map. The simulation never
// reorgs, so nothing is ever purged.
type memorySpentCoinStore struct {
	spentCoins map[externalapi.DomainOutpoint]*externalapi.SpentCoin
}

func newMemorySpentCoinStore() *memorySpentCoinStore {
	return &memorySpentCoinStore{
		spentCoins: make(map[externalapi.DomainOutpoint]*externalapi.SpentCoin),
	}
}

func (m *memorySpentCoinStore) Read(outpoint *externalapi.DomainOutpoint) (*externalapi.SpentCoin, bool, error) {
	spentCoin, ok := m.spentCoins[*outpoint]
	return spentCoin, ok, nil
}

func (m *memorySpentCoinStore) Write(outpoint *externalapi.DomainOutpoint, spentCoin *externalapi.SpentCoin) error {
	m.spentCoins[*outpoint] = spentCoin
	return nil
}

var _ model.SpentCoinStore = &memorySpentCoinStore{}

// acceptAllScripts stands in for the script engine. The simulated scripts are
// random bytes, so there is nothing to actually verify.
type acceptAllScripts struct{}

func (acceptAllScripts) VerifyScript(signatureScript, scriptPublicKey []byte, witness [][]byte,
	flags uint32, tx *externalapi.DomainTransaction, inputIndex int, amount int64) error {
	return nil
}

type simulation struct {
	cfg            *configFlags
	params         *chaincfg.Params
	chain          *simChain
	utxoSet        *utxo.Set
	spentCoinStore *memorySpentCoinStore
	validator      model.StakeValidator
	rng            *rand.Rand

	stakers []externalapi.DomainOutpoint
}

func newSimulation(cfg *configFlags) *simulation {
	params := &chaincfg.SimnetParams
	chain := &simChain{}
	utxoSet := utxo.NewSet()
	spentCoinStore := newMemorySpentCoinStore()
	validator := stakevalidator.New(params, chain, utxoSet, spentCoinStore,
		acceptAllScripts{}, &sync.RWMutex{})

	return &simulation{
		cfg:            cfg,
		params:         params,
		chain:          chain,
		utxoSet:        utxoSet,
		spentCoinStore: spentCoinStore,
		validator:      validator,
		rng:            rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (s *simulation) run() error {
	// Every found kernel sidelines its coin until the coinstake's output
	// matures again, so the simulation needs more coins than the maturity
	// window or it eventually runs out of eligible stakers.
	if s.cfg.Stakers < uint64(s.params.StakeMinConfirmations) {
		log.Warnf("Only %d stakers for a maturity window of %d blocks; the simulation may stall",
			s.cfg.Stakers, s.params.StakeMinConfirmations)
	}

	s.buildGenesis()
	s.seedStakers()

	for height := uint64(1); height <= s.cfg.NumberOfBlocks; height++ {
		err := s.findNextBlock()
		if err != nil {
			return err
		}
	}

	tip, _ := s.chain.Tip()
	kernelRate := stakestatistics.New(s.params, s.chain).EstimateNetworkStakesPerSecond(tip)
	genesis, _ := s.chain.ByHeight(0)
	log.Infof("Simulated %d stake blocks over %d seconds of chain time", tip.Height, tip.Time-genesis.Time)
	log.Infof("Estimated network kernel rate: %f stakes/s", kernelRate)
	return nil
}

func (s *simulation) buildGenesis() {
	mask := s.params.StakeTimestampMask(0)
	s.chain.appendEntry(&externalapi.BlockIndexEntry{
		Height:        0,
		Time:          simulationStartTime &^ mask,
		Bits:          s.cfg.bits,
		StakeModifier: externalapi.NewZeroHash(),
		ProofOfStake:  false,
	})
}

func (s *simulation) seedStakers() {
	for i := uint64(0); i < s.cfg.Stakers; i++ {
		outpoint := s.randomOutpoint()
		s.utxoSet.Add(outpoint, &externalapi.Coin{
			Output: &externalapi.DomainTransactionOutput{
				Kind:            externalapi.OutputKindStandard,
				Value:           s.cfg.CoinValue,
				ScriptPublicKey: s.randomScript(),
			},
			Height: 0,
		})
		s.stakers = append(s.stakers, *outpoint)
	}
	log.Infof("Seeded %d stake coins of %d base units each", s.cfg.Stakers, s.cfg.CoinValue)
}

// findNextBlock scans mask-aligned candidate timestamps after the tip until
// one of the stake coins produces a passing kernel, then validates and
// connects the resulting coinstake.
func (s *simulation) findNextBlock() error {
	prev, _ := s.chain.Tip()
	mask := s.params.StakeTimestampMask(prev.Height + 1)

	candidate := (prev.Time | mask) + 1
	for tried := 0; tried < maxCandidatesPerBlock; tried++ {
		for i := range s.stakers {
			outpoint := &s.stakers[i]
			passed, _, err := s.validator.CheckKernel(prev, s.cfg.bits, candidate, outpoint)
			if err != nil {
				return err
			}
			if passed {
				return s.connectBlock(prev, outpoint, candidate, i)
			}
		}
		candidate += mask + 1
	}
	return errors.Errorf("no kernel found within %d candidate timestamps of height %d; "+
		"difficulty bits %08x are too high for this simulation",
		maxCandidatesPerBlock, prev.Height+1, s.cfg.bits)
}

func (s *simulation) connectBlock(prev *externalapi.BlockIndexEntry,
	outpoint *externalapi.DomainOutpoint, blockTime uint32, stakerIndex int) error {

	coin, ok := s.utxoSet.GetCoin(outpoint)
	if !ok {
		return errors.Errorf("stake coin %s disappeared from the UTXO set", outpoint)
	}

	coinstake := buildCoinstake(outpoint, coin)
	kernelHash, _, err := s.validator.CheckProofOfStake(prev, coinstake, blockTime, s.cfg.bits)
	if err != nil {
		return errors.Wrapf(err, "coinstake built from a passing kernel failed validation")
	}

	newEntry := &externalapi.BlockIndexEntry{
		Height:        prev.Height + 1,
		Time:          blockTime,
		Bits:          s.cfg.bits,
		StakeModifier: pos.CalcStakeModifier(prev, kernelHash),
		ProofOfStake:  true,
	}
	s.chain.appendEntry(newEntry)

	// Roll the stake coin forward: retire the kernel into the spent-coin
	// store and continue staking with the coinstake's output.
	s.utxoSet.Remove(outpoint)
	err = s.spentCoinStore.Write(outpoint, &externalapi.SpentCoin{
		Coin:        coin,
		SpentHeight: newEntry.Height,
	})
	if err != nil {
		return err
	}

	newOutpoint := &externalapi.DomainOutpoint{
		TransactionID: *consensushashing.TransactionID(coinstake),
		Index:         1,
	}
	s.utxoSet.Add(newOutpoint, &externalapi.Coin{
		Output: coinstake.Outputs[1],
		Height: newEntry.Height,
	})
	s.stakers[stakerIndex] = *newOutpoint

	log.Infof("Found kernel for height %d: staker=%d time=%d hash=%s",
		newEntry.Height, stakerIndex, blockTime, kernelHash)
	return nil
}

// buildCoinstake assembles the minimal well-formed coinstake claiming the
// given kernel coin: the empty data marker at output 0 and the staked value
// returned to the kernel script at output 1.
func buildCoinstake(outpoint *externalapi.DomainOutpoint, coin *externalapi.Coin) *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: *outpoint,
			SignatureScript:  []byte{0x01, 0x01},
		}},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Kind: externalapi.OutputKindData},
			{
				Kind:            externalapi.OutputKindStandard,
				Value:           coin.Output.Value,
				ScriptPublicKey: coin.Output.ScriptPublicKey,
			},
		},
	}
}

func (s *simulation) randomOutpoint() *externalapi.DomainOutpoint {
	var transactionIDBytes [32]byte
	s.rng.Read(transactionIDBytes[:])
	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&transactionIDBytes)),
		Index:         0,
	}
}

func (s *simulation) randomScript() []byte {
	script := make([]byte, 25)
	s.rng.Read(script)
	// Keep the script from accidentally starting with the stake-lock
	// opcode, which would drag the multi-input value-return rules into the
	// simulation.
	script[0] = 0x76
	return script
}
