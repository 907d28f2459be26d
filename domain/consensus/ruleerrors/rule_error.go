package ruleerrors

import (
	"github.com/pkg/errors"
)

// MisbehaviorPenalty is the score by which the peer that relayed an invalid
// block should be penalized. Penalties reflect the consequence of a rule
// violation, not the call site that detected it.
type MisbehaviorPenalty uint32

const (
	// PenaltyNone marks rejections that carry no evidence of wrongdoing,
	// such as malformed inputs to a check
	PenaltyNone MisbehaviorPenalty = 0

	// PenaltyLight marks rejections an honest producer can trigger under
	// normal network races
	PenaltyLight MisbehaviorPenalty = 1

	// PenaltyModerate marks rejections that may also indicate the
	// validator simply lacks the referenced history
	PenaltyModerate MisbehaviorPenalty = 20

	// PenaltySevere marks rejections that indicate a broken or malicious
	// block producer
	PenaltySevere MisbehaviorPenalty = 100
)

// These constants are used to identify a specific RuleError.
var (
	// ErrMalformedCoinstake indicates the transaction handed to stake
	// validation is not a coinstake or has no inputs.
	ErrMalformedCoinstake = newRuleError("ErrMalformedCoinstake", PenaltySevere)

	// ErrPrevoutNotFound indicates the kernel input references an output
	// that neither the live UTXO set nor the spent-coin cache holds.
	ErrPrevoutNotFound = newRuleError("ErrPrevoutNotFound", PenaltyModerate)

	// ErrStalePrevout indicates the kernel coin was spent deeper in
	// history than the reorg window allows to replay.
	ErrStalePrevout = newRuleError("ErrStalePrevout", PenaltySevere)

	// ErrPrevoutHeightUnknown indicates the kernel coin claims an
	// originating height the chain index does not know.
	ErrPrevoutHeightUnknown = newRuleError("ErrPrevoutHeightUnknown", PenaltySevere)

	// ErrInvalidPrevoutType indicates a coinstake input references an
	// output that is not a standard spendable output.
	ErrInvalidPrevoutType = newRuleError("ErrInvalidPrevoutType", PenaltySevere)

	// ErrInsufficientStakeDepth indicates the kernel coin has fewer
	// confirmations than staking requires.
	ErrInsufficientStakeDepth = newRuleError("ErrInsufficientStakeDepth", PenaltySevere)

	// ErrScriptVerifyFailed indicates the coinstake's unlocking script
	// does not satisfy the kernel coin's locking script.
	ErrScriptVerifyFailed = newRuleError("ErrScriptVerifyFailed", PenaltySevere)

	// ErrKernelTargetMiss indicates the kernel hash exceeds the weighted
	// target. One expected outcome of normal network races, not an attack
	// signal.
	ErrKernelTargetMiss = newRuleError("ErrKernelTargetMiss", PenaltyLight)

	// ErrMixedPrevoutScripts indicates an extra coinstake input is locked
	// by a script other than the kernel script.
	ErrMixedPrevoutScripts = newRuleError("ErrMixedPrevoutScripts", PenaltySevere)

	// ErrBadOutputType indicates a coinstake output is of a kind that is
	// neither standard nor data.
	ErrBadOutputType = newRuleError("ErrBadOutputType", PenaltySevere)

	// ErrInsufficientReturnValue indicates a stake-locked coinstake pays
	// back less than the summed input value to the kernel script.
	ErrInsufficientReturnValue = newRuleError("ErrInsufficientReturnValue", PenaltySevere)

	// ErrBadDifficultyBits indicates the compact difficulty encoding is
	// negative, overflowing or zero.
	ErrBadDifficultyBits = newRuleError("ErrBadDifficultyBits", PenaltyNone)

	// ErrFutureKernelTimestamp indicates the candidate block time precedes
	// the time of the block containing the kernel coin.
	ErrFutureKernelTimestamp = newRuleError("ErrFutureKernelTimestamp", PenaltyNone)
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many
// validation rules. The caller can use type assertions to determine if a
// failure was specifically due to a rule violation, and Penalty to decide by
// how much to raise the originating peer's misbehavior score.
type RuleError struct {
	message string
	penalty MisbehaviorPenalty
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is satisfies the errors.Is interface. Two RuleErrors match when they carry
// the same message, regardless of the wrapped detail.
func (e RuleError) Is(target error) bool {
	other, ok := target.(RuleError)
	return ok && other.message == e.message
}

// Penalty returns the misbehavior score associated with this rule violation
func (e RuleError) Penalty() MisbehaviorPenalty {
	return e.penalty
}

func newRuleError(message string, penalty MisbehaviorPenalty) RuleError {
	return RuleError{message: message, penalty: penalty}
}

// Errorf returns a rule error matching the given sentinel with a formatted
// detail message attached, wrapped with a stack trace.
func Errorf(sentinel RuleError, format string, args ...interface{}) error {
	return errors.WithStack(RuleError{
		message: sentinel.message,
		penalty: sentinel.penalty,
		inner:   errors.Errorf(format, args...),
	})
}

// PenaltyOf extracts the misbehavior penalty from err. Errors that are not
// rule violations carry no penalty.
func PenaltyOf(err error) MisbehaviorPenalty {
	var ruleError RuleError
	if errors.As(err, &ruleError) {
		return ruleError.penalty
	}
	return PenaltyNone
}
