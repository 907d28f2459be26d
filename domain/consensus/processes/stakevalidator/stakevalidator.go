package stakevalidator

import (
	"bytes"
	"sync"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/chaincfg"
	"github.com/emberchain/emberd/domain/consensus/model"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
	"github.com/emberchain/emberd/domain/consensus/utils/pos"
	"github.com/emberchain/emberd/domain/consensus/utils/txscript"
)

// stakeValidator validates coinstake transactions against the kernel
// protocol. All chain-state reads go through the injected interfaces; the
// validator itself holds no chain state across calls.
type stakeValidator struct {
	params         *chaincfg.Params
	blockIndex     model.BlockIndex
	utxoSet        model.UTXOSet
	spentCoinStore model.SpentCoinStore
	scriptVerifier model.ScriptVerifier

	// chainStateLock is the chain-wide lock owned by the block-connection
	// orchestrator. CheckProofOfStake runs with it already held;
	// CheckKernel acquires it only around its chain reads.
	chainStateLock *sync.RWMutex

	bulkReindexing bool
}

// New instantiates a new StakeValidator
func New(params *chaincfg.Params,
	blockIndex model.BlockIndex,
	utxoSet model.UTXOSet,
	spentCoinStore model.SpentCoinStore,
	scriptVerifier model.ScriptVerifier,
	chainStateLock *sync.RWMutex) model.StakeValidator {

	return &stakeValidator{
		params:         params,
		blockIndex:     blockIndex,
		utxoSet:        utxoSet,
		spentCoinStore: spentCoinStore,
		scriptVerifier: scriptVerifier,
		chainStateLock: chainStateLock,
	}
}

// NewWithBulkReindexing instantiates a StakeValidator that suspends the
// reorg-depth bound on spent kernels, for use while replaying settled history
// from disk.
func NewWithBulkReindexing(params *chaincfg.Params,
	blockIndex model.BlockIndex,
	utxoSet model.UTXOSet,
	spentCoinStore model.SpentCoinStore,
	scriptVerifier model.ScriptVerifier,
	chainStateLock *sync.RWMutex) model.StakeValidator {

	validator := New(params, blockIndex, utxoSet, spentCoinStore, scriptVerifier, chainStateLock)
	validator.(*stakeValidator).bulkReindexing = true
	return validator
}

// CheckProofOfStake validates the coinstake transaction of a candidate block
// connecting on top of prevEntry, with the candidate's time and difficulty
// bits. The caller must hold the chain-state lock for the duration of the
// call. On success the computed kernel hash and weighted target are returned
// for the caller to persist in block metadata; on a kernel target miss they
// are returned alongside the error for diagnostics.
func (v *stakeValidator) CheckProofOfStake(prevEntry *externalapi.BlockIndexEntry,
	tx *externalapi.DomainTransaction, blockTime uint32, bits uint32) (
	*externalapi.DomainHash, *uint256.Int, error) {

	if !tx.IsCoinStake() || len(tx.Inputs) < 1 {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrMalformedCoinstake,
			"transaction %s is not a well-formed coinstake", consensushashing.TransactionID(tx))
	}

	// The kernel (input 0) must match the stake hash target per coin
	// weight.
	kernelInput := tx.Inputs[0]

	coin, spentCoin, err := v.resolveCoin(&kernelInput.PreviousOutpoint)
	if err != nil {
		return nil, nil, err
	}
	if spentCoin != nil {
		log.Debugf("Kernel %s of coinstake %s resolved through the spent-coin cache",
			kernelInput.PreviousOutpoint, consensushashing.TransactionID(tx))

		// A kernel whose spend settled deeper than any plausible reorg
		// cannot be replaying an honest fork.
		if !v.bulkReindexing &&
			prevEntry.Height > spentCoin.SpentHeight &&
			prevEntry.Height-spentCoin.SpentHeight > uint64(v.params.MaxReorgDepth) {
			return nil, nil, ruleerrors.Errorf(ruleerrors.ErrStalePrevout,
				"kernel %s was spent at height %d, beyond the reorg window at height %d",
				kernelInput.PreviousOutpoint, spentCoin.SpentHeight, prevEntry.Height)
		}
	}
	if !coin.IsStandard() {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrInvalidPrevoutType,
			"kernel %s is not a standard output", kernelInput.PreviousOutpoint)
	}

	kernelEntry, ok := v.blockIndex.ByHeight(coin.Height)
	if !ok {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrPrevoutHeightUnknown,
			"kernel %s claims unknown originating height %d", kernelInput.PreviousOutpoint, coin.Height)
	}

	// A kernel minted above prevEntry has negative depth; this happens when
	// validating a fork block while the index holds higher entries. Guard
	// before the unsigned subtraction.
	if coin.Height > prevEntry.Height {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrInsufficientStakeDepth,
			"kernel %s originates at height %d, above the previous block at height %d",
			kernelInput.PreviousOutpoint, coin.Height, prevEntry.Height)
	}
	depth := prevEntry.Height - coin.Height
	if requiredDepth := v.requiredStakeDepth(prevEntry.Height); depth < requiredDepth {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrInsufficientStakeDepth,
			"tried to stake at depth %d while %d is required", depth+1, requiredDepth+1)
	}

	kernelScript := coin.Output.ScriptPublicKey
	amount := coin.Output.Value

	// Redundant with the general input verification performed when the
	// block connects, but the kernel weight is only meaningful if this
	// transaction can genuinely unlock the kernel script.
	err = v.scriptVerifier.VerifyScript(kernelInput.SignatureScript, kernelScript,
		kernelInput.Witness, txscript.StandardVerifyFlags, tx, 0, amount)
	if err != nil {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrScriptVerifyFailed,
			"coinstake %s does not unlock its kernel: %s", consensushashing.TransactionID(tx), err)
	}

	passed, kernelHash, target, err := pos.CheckStakeKernelHash(prevEntry, bits,
		kernelEntry.Time, amount, &kernelInput.PreviousOutpoint, blockTime)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("Checked kernel: modifier=%s kernelTime=%d prevout=%s time=%d hash=%s",
		prevEntry.StakeModifier, kernelEntry.Time, kernelInput.PreviousOutpoint, blockTime, kernelHash)
	if !passed {
		return kernelHash, target, ruleerrors.Errorf(ruleerrors.ErrKernelTargetMiss,
			"kernel hash %s exceeds the weighted target", kernelHash)
	}

	if txscript.HasIsCoinStakeOp(kernelScript) {
		err := v.checkStakeLockedValueReturn(tx, kernelScript, amount)
		if err != nil {
			return nil, nil, err
		}
	}

	return kernelHash, target, nil
}

// checkStakeLockedValueReturn enforces the stake-locked script rule: all
// extra inputs must be locked by the kernel script, and the outputs paying
// that script must return at least the summed input value. The reward split
// is otherwise user selectable, so this is the only check standing between a
// compromised staking node and a reassigned block reward.
func (v *stakeValidator) checkStakeLockedValueReturn(tx *externalapi.DomainTransaction,
	kernelScript []byte, kernelAmount int64) error {

	amount := kernelAmount
	for k := 1; k < len(tx.Inputs); k++ {
		input := tx.Inputs[k]
		coin, spentCoin, err := v.resolveCoin(&input.PreviousOutpoint)
		if err != nil {
			return err
		}
		if spentCoin != nil {
			log.Debugf("Input %d of coinstake %s is spent", k, consensushashing.TransactionID(tx))
		}
		if !coin.IsStandard() {
			return ruleerrors.Errorf(ruleerrors.ErrInvalidPrevoutType,
				"input %d of coinstake references a non-standard output", k)
		}
		if !bytes.Equal(kernelScript, coin.Output.ScriptPublicKey) {
			return ruleerrors.Errorf(ruleerrors.ErrMixedPrevoutScripts,
				"input %d of coinstake is not locked by the kernel script", k)
		}
		amount += coin.Output.Value
	}

	var returnedValue int64
	for _, output := range tx.Outputs {
		switch output.Kind {
		case externalapi.OutputKindStandard:
			if bytes.Equal(output.ScriptPublicKey, kernelScript) {
				returnedValue += output.Value
			}
		case externalapi.OutputKindData:
			continue
		default:
			return ruleerrors.Errorf(ruleerrors.ErrBadOutputType,
				"coinstake %s carries an output of kind %d",
				consensushashing.TransactionID(tx), output.Kind)
		}
	}

	if returnedValue < amount {
		return ruleerrors.Errorf(ruleerrors.ErrInsufficientReturnValue,
			"coinstake %s returns %d to the kernel script while staking %d",
			consensushashing.TransactionID(tx), returnedValue, amount)
	}
	return nil
}

// resolveCoin resolves an outpoint against the live UTXO set, falling back
// to the spent-coin cache when the live set does not hold it or already
// marks it spent. spentCoin is non-nil exactly when the fallback was taken.
func (v *stakeValidator) resolveCoin(outpoint *externalapi.DomainOutpoint) (
	coin *externalapi.Coin, spentCoin *externalapi.SpentCoin, err error) {

	coin, ok := v.utxoSet.GetCoin(outpoint)
	if ok && !coin.Spent {
		return coin, nil, nil
	}

	spentCoin, found, err := v.spentCoinStore.Read(outpoint)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, ruleerrors.Errorf(ruleerrors.ErrPrevoutNotFound,
			"prevout %s is neither in the UTXO set nor in the spent-coin cache", outpoint)
	}
	return spentCoin.Coin, spentCoin, nil
}

func (v *stakeValidator) requiredStakeDepth(prevHeight uint64) uint64 {
	requiredDepth := uint64(v.params.StakeMinConfirmations - 1)
	if halfHeight := prevHeight / 2; halfHeight < requiredDepth {
		requiredDepth = halfHeight
	}
	return requiredDepth
}

// CheckKernel tries a single candidate timestamp against an owned outpoint.
// Used only when staking, not during validation: the coin must still be live,
// so there is no spent-cache fallback. The chain-state lock is held only
// around the chain reads, keeping the producer's search loop from stalling
// block connection.
func (v *stakeValidator) CheckKernel(prevEntry *externalapi.BlockIndexEntry, bits uint32,
	blockTime uint32, outpoint *externalapi.DomainOutpoint) (bool, uint32, error) {

	v.chainStateLock.RLock()
	coin, ok := v.utxoSet.GetCoin(outpoint)
	var kernelEntry *externalapi.BlockIndexEntry
	entryFound := false
	if ok {
		kernelEntry, entryFound = v.blockIndex.ByHeight(coin.Height)
	}
	v.chainStateLock.RUnlock()

	if !ok {
		return false, 0, errors.Errorf("prevout %s not found", outpoint)
	}
	if !coin.IsStandard() {
		return false, 0, errors.Errorf("prevout %s is not a standard output", outpoint)
	}
	if coin.Spent {
		return false, 0, errors.Errorf("prevout %s is spent", outpoint)
	}
	if !entryFound {
		return false, 0, nil
	}

	if coin.Height > prevEntry.Height {
		return false, 0, nil
	}
	depth := prevEntry.Height - coin.Height
	if depth < v.requiredStakeDepth(prevEntry.Height) {
		return false, 0, nil
	}

	passed, _, _, err := pos.CheckStakeKernelHash(prevEntry, bits, kernelEntry.Time,
		coin.Output.Value, outpoint, blockTime)
	if err != nil {
		return false, 0, err
	}
	return passed, kernelEntry.Time, nil
}
