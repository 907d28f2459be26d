package consensushashing

import (
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/hashes"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
)

// TransactionID computes the ID of the given transaction: the digest of its
// canonical serialization, witness data excluded.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	writer := hashes.NewHashWriter()

	err := serialization.WriteElements(writer, tx.Version, uint64(len(tx.Inputs)))
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
	}
	for _, input := range tx.Inputs {
		err := serialization.WriteElements(writer,
			&input.PreviousOutpoint.TransactionID, input.PreviousOutpoint.Index)
		if err != nil {
			panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
		}
		writeByteString(writer, input.SignatureScript)
		err = serialization.WriteElement(writer, input.Sequence)
		if err != nil {
			panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
		}
	}

	err = serialization.WriteElement(writer, uint64(len(tx.Outputs)))
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
	}
	for _, output := range tx.Outputs {
		err := serialization.WriteElements(writer, uint8(output.Kind), output.Value)
		if err != nil {
			panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
		}
		writeByteString(writer, output.ScriptPublicKey)
		writeByteString(writer, output.Payload)
	}

	err = serialization.WriteElement(writer, tx.LockTime)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
	}

	transactionID := externalapi.DomainTransactionID(*writer.Finalize())
	return &transactionID
}

func writeByteString(writer *hashes.HashWriter, byteString []byte) {
	err := serialization.WriteElement(writer, uint64(len(byteString)))
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Writes to a HashWriter cannot fail"))
	}
	writer.InfallibleWrite(byteString)
}
