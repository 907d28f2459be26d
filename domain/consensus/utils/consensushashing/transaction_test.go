package consensushashing_test

import (
	"testing"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/consensushashing"
)

func sampleTransaction() *externalapi.DomainTransaction {
	var transactionIDBytes [32]byte
	transactionIDBytes[0] = 0x42
	return &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{
				TransactionID: externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&transactionIDBytes)),
				Index:         2,
			},
			SignatureScript: []byte{0x01, 0x02},
			Sequence:        0xffffffff,
		}},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Kind: externalapi.OutputKindData},
			{Kind: externalapi.OutputKindStandard, Value: 100, ScriptPublicKey: []byte{0x76}},
		},
		LockTime: 0,
	}
}

func TestTransactionIDStability(t *testing.T) {
	first := consensushashing.TransactionID(sampleTransaction())
	second := consensushashing.TransactionID(sampleTransaction())
	if *first != *second {
		t.Fatalf("expected identical transactions to share an ID, instead found: %s != %s", first, second)
	}
}

func TestTransactionIDIgnoresWitness(t *testing.T) {
	plain := sampleTransaction()
	withWitness := sampleTransaction()
	withWitness.Inputs[0].Witness = [][]byte{{0xde, 0xad}}

	if *consensushashing.TransactionID(plain) != *consensushashing.TransactionID(withWitness) {
		t.Fatal("expected witness data to stay out of the transaction ID")
	}
}

func TestTransactionIDSensitivity(t *testing.T) {
	base := consensushashing.TransactionID(sampleTransaction())

	mutations := []struct {
		name   string
		mutate func(tx *externalapi.DomainTransaction)
	}{
		{"version", func(tx *externalapi.DomainTransaction) { tx.Version = 2 }},
		{"outpoint index", func(tx *externalapi.DomainTransaction) { tx.Inputs[0].PreviousOutpoint.Index = 3 }},
		{"signature script", func(tx *externalapi.DomainTransaction) { tx.Inputs[0].SignatureScript = []byte{0x03} }},
		{"sequence", func(tx *externalapi.DomainTransaction) { tx.Inputs[0].Sequence = 0 }},
		{"output value", func(tx *externalapi.DomainTransaction) { tx.Outputs[1].Value = 101 }},
		{"output script", func(tx *externalapi.DomainTransaction) { tx.Outputs[1].ScriptPublicKey = []byte{0x77} }},
		{"output kind", func(tx *externalapi.DomainTransaction) { tx.Outputs[1].Kind = externalapi.OutputKindOther }},
		{"lock time", func(tx *externalapi.DomainTransaction) { tx.LockTime = 1 }},
	}

	for _, test := range mutations {
		tx := sampleTransaction()
		test.mutate(tx)
		if *consensushashing.TransactionID(tx) == *base {
			t.Fatalf("changing the %s did not change the transaction ID", test.name)
		}
	}
}
