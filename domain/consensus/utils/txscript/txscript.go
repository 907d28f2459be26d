package txscript

// OpIsCoinStake is the opcode marking a locking script as stake-locked: every
// coinstake spending such a script must return at least the staked value to
// the same script.
const OpIsCoinStake = 0xb8

// Script verification flags. Interpretation is the script verifier's concern;
// consensus only selects which flag set to hand it.
const (
	// ScriptVerifyCleanStack requires that only a single stack element
	// remains after script evaluation
	ScriptVerifyCleanStack uint32 = 1 << iota

	// ScriptVerifyLockTime enforces locktime-encumbered scripts
	ScriptVerifyLockTime

	// ScriptVerifySequence enforces relative-locktime-encumbered scripts
	ScriptVerifySequence

	// ScriptVerifyWitness verifies with witness programs
	ScriptVerifyWitness
)

// StandardVerifyFlags are the script flags applied when validating scripts on
// the consensus-critical path.
const StandardVerifyFlags = ScriptVerifyCleanStack |
	ScriptVerifyLockTime |
	ScriptVerifySequence |
	ScriptVerifyWitness

// HasIsCoinStakeOp returns whether the given locking script carries the
// stake-locked marker in its leading opcode.
func HasIsCoinStakeOp(script []byte) bool {
	return len(script) > 0 && script[0] == OpIsCoinStake
}
