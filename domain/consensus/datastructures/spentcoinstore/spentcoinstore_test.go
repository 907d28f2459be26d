package spentcoinstore_test

import (
	"path/filepath"
	"testing"

	"github.com/emberchain/emberd/domain/consensus/datastructures/spentcoinstore"
	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/infrastructure/db/database/ldb"
)

func setupStore(t *testing.T) *spentcoinstore.SpentCoinStore {
	db, err := ldb.NewLevelDB(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("NewLevelDB: %+v", err)
	}
	t.Cleanup(func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("Close: %+v", err)
		}
	})
	return spentcoinstore.New(db)
}

func testOutpoint(fill byte, index uint32) *externalapi.DomainOutpoint {
	var transactionIDBytes [32]byte
	for i := range transactionIDBytes {
		transactionIDBytes[i] = fill
	}
	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&transactionIDBytes)),
		Index:         index,
	}
}

func testSpentCoin() *externalapi.SpentCoin {
	return &externalapi.SpentCoin{
		Coin: &externalapi.Coin{
			Output: &externalapi.DomainTransactionOutput{
				Kind:            externalapi.OutputKindStandard,
				Value:           5000000000,
				ScriptPublicKey: []byte{0x76, 0xa9, 0x14, 0x01, 0x02},
			},
			Height: 42,
			Spent:  true,
		},
		SpentHeight: 50,
	}
}

func TestSpentCoinStoreReadWrite(t *testing.T) {
	store := setupStore(t)
	outpoint := testOutpoint(0xaa, 1)

	_, found, err := store.Read(outpoint)
	if err != nil {
		t.Fatalf("Read: %+v", err)
	}
	if found {
		t.Fatal("expected an empty store not to find the outpoint")
	}

	written := testSpentCoin()
	err = store.Write(outpoint, written)
	if err != nil {
		t.Fatalf("Write: %+v", err)
	}

	read, found, err := store.Read(outpoint)
	if err != nil {
		t.Fatalf("Read: %+v", err)
	}
	if !found {
		t.Fatal("expected to find the written outpoint")
	}
	if read.SpentHeight != written.SpentHeight {
		t.Fatalf("expected spent height %d, instead found: %d", written.SpentHeight, read.SpentHeight)
	}
	if read.Coin.Height != written.Coin.Height {
		t.Fatalf("expected coin height %d, instead found: %d", written.Coin.Height, read.Coin.Height)
	}
	if read.Coin.Output.Value != written.Coin.Output.Value {
		t.Fatalf("expected value %d, instead found: %d", written.Coin.Output.Value, read.Coin.Output.Value)
	}
	if !read.Coin.IsStandard() {
		t.Fatal("expected the read coin to remain standard")
	}
}

func TestSpentCoinStoreOutpointKeying(t *testing.T) {
	store := setupStore(t)

	// Same transaction, different output indexes: distinct entries.
	first := testOutpoint(0xaa, 0)
	second := testOutpoint(0xaa, 1)

	firstCoin := testSpentCoin()
	firstCoin.SpentHeight = 51
	secondCoin := testSpentCoin()
	secondCoin.SpentHeight = 52

	if err := store.Write(first, firstCoin); err != nil {
		t.Fatalf("Write: %+v", err)
	}
	if err := store.Write(second, secondCoin); err != nil {
		t.Fatalf("Write: %+v", err)
	}

	read, found, err := store.Read(first)
	if err != nil || !found {
		t.Fatalf("Read: found=%t err=%+v", found, err)
	}
	if read.SpentHeight != 51 {
		t.Fatalf("expected spent height 51, instead found: %d", read.SpentHeight)
	}
	read, found, err = store.Read(second)
	if err != nil || !found {
		t.Fatalf("Read: found=%t err=%+v", found, err)
	}
	if read.SpentHeight != 52 {
		t.Fatalf("expected spent height 52, instead found: %d", read.SpentHeight)
	}
}

func TestSpentCoinStoreDelete(t *testing.T) {
	store := setupStore(t)
	outpoint := testOutpoint(0xbb, 7)

	if err := store.Write(outpoint, testSpentCoin()); err != nil {
		t.Fatalf("Write: %+v", err)
	}
	if err := store.Delete(outpoint); err != nil {
		t.Fatalf("Delete: %+v", err)
	}

	_, found, err := store.Read(outpoint)
	if err != nil {
		t.Fatalf("Read: %+v", err)
	}
	if found {
		t.Fatal("expected the deleted outpoint to be gone")
	}

	// Deleting a missing entry is not an error.
	if err := store.Delete(outpoint); err != nil {
		t.Fatalf("Delete of a missing entry: %+v", err)
	}
}
