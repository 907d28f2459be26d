package model

import "github.com/emberchain/emberd/domain/consensus/model/externalapi"

// ScriptVerifier executes an unlocking script against a locking script and
// reports whether it satisfies it. Script semantics are entirely the
// verifier's concern; this core only consumes the pass/fail result.
type ScriptVerifier interface {
	VerifyScript(signatureScript []byte, scriptPublicKey []byte, witness [][]byte,
		flags uint32, tx *externalapi.DomainTransaction, inputIndex int, amount int64) error
}
