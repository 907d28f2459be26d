package externalapi

import (
	"encoding/hex"
	"fmt"
)

// DomainTransaction represents an Ember transaction
type DomainTransaction struct {
	Version  uint16
	Inputs   []*DomainTransactionInput
	Outputs  []*DomainTransactionOutput
	LockTime uint64
}

// IsCoinStake returns whether this transaction is flagged as a stake claim.
// A coinstake spends a real outpoint in its first input and carries an empty
// data output at position 0, leaving position 1 onwards for the staked value.
func (tx *DomainTransaction) IsCoinStake() bool {
	return len(tx.Inputs) >= 1 &&
		!tx.Inputs[0].PreviousOutpoint.IsNull() &&
		len(tx.Outputs) >= 2 &&
		tx.Outputs[0].Kind == OutputKindData
}

// DomainTransactionInput represents an Ember transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Witness          [][]byte
	Sequence         uint64
}

// DomainOutpoint represents an Ember transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// IsNull returns whether this outpoint is the designated empty outpoint used
// by coinbase transactions
func (op *DomainOutpoint) IsNull() bool {
	return op.Index == 0xffffffff && (*DomainHash)(&op.TransactionID).IsZero()
}

// Equal returns whether op equals to other
func (op *DomainOutpoint) Equal(other *DomainOutpoint) bool {
	if op == nil || other == nil {
		return op == other
	}
	return op.TransactionID == other.TransactionID && op.Index == other.Index
}

// OutputKind is the tag distinguishing the kinds of transaction outputs
type OutputKind byte

const (
	// OutputKindStandard is a value-bearing output locked by a script
	OutputKindStandard OutputKind = iota

	// OutputKindData is a zero-value output carrying an arbitrary payload
	OutputKindData

	// OutputKindOther covers output kinds this consensus core does not
	// interpret
	OutputKindOther
)

// DomainTransactionOutput represents an Ember transaction output
type DomainTransactionOutput struct {
	Kind            OutputKind
	Value           int64
	ScriptPublicKey []byte
	Payload         []byte
}

// DomainTransactionID represents the ID of an Ember transaction
type DomainTransactionID DomainHash

// String stringifies a transaction ID.
func (id DomainTransactionID) String() string {
	return hex.EncodeToString(id.hashArray[:])
}

// ByteSlice returns the bytes in this transactionID represented as a byte slice.
// The bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *DomainTransactionID) ByteSlice() []byte {
	return (*DomainHash)(id).ByteSlice()
}
