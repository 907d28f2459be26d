package utxo

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
	"github.com/emberchain/emberd/domain/consensus/utils/serialization"
)

// SerializeOutpoint returns the canonical byte-slice representation of the
// given outpoint, usable as a database key
func SerializeOutpoint(outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	w := &bytes.Buffer{}
	err := serialization.WriteElements(w, &outpoint.TransactionID, outpoint.Index)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DeserializeOutpoint deserializes the given byte slice into an outpoint
func DeserializeOutpoint(outpointBytes []byte) (*externalapi.DomainOutpoint, error) {
	r := bytes.NewReader(outpointBytes)

	transactionIDBytes := make([]byte, externalapi.DomainHashSize)
	_, err := io.ReadFull(r, transactionIDBytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	transactionID, err := externalapi.NewDomainHashFromByteSlice(transactionIDBytes)
	if err != nil {
		return nil, err
	}

	var index uint32
	err = serialization.ReadElement(r, &index)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*transactionID),
		Index:         index,
	}, nil
}

// SerializeSpentCoin returns the byte-slice representation of the given spent
// coin
func SerializeSpentCoin(spentCoin *externalapi.SpentCoin) ([]byte, error) {
	w := &bytes.Buffer{}

	err := serialization.WriteElement(w, spentCoin.SpentHeight)
	if err != nil {
		return nil, err
	}

	err = serializeCoin(w, spentCoin.Coin)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// DeserializeSpentCoin deserializes the given byte slice into a spent coin
func DeserializeSpentCoin(spentCoinBytes []byte) (*externalapi.SpentCoin, error) {
	r := bytes.NewReader(spentCoinBytes)

	spentCoin := &externalapi.SpentCoin{}
	err := serialization.ReadElement(r, &spentCoin.SpentHeight)
	if err != nil {
		return nil, err
	}

	spentCoin.Coin, err = deserializeCoin(r)
	if err != nil {
		return nil, err
	}

	return spentCoin, nil
}

func serializeCoin(w io.Writer, coin *externalapi.Coin) error {
	err := serialization.WriteElements(w, coin.Height, coin.Spent,
		uint8(coin.Output.Kind), coin.Output.Value)
	if err != nil {
		return err
	}

	err = writeByteString(w, coin.Output.ScriptPublicKey)
	if err != nil {
		return err
	}
	return writeByteString(w, coin.Output.Payload)
}

func deserializeCoin(r io.Reader) (*externalapi.Coin, error) {
	coin := &externalapi.Coin{Output: &externalapi.DomainTransactionOutput{}}

	var kind uint8
	err := serialization.ReadElements(r, &coin.Height, &coin.Spent, &kind, &coin.Output.Value)
	if err != nil {
		return nil, err
	}
	coin.Output.Kind = externalapi.OutputKind(kind)

	coin.Output.ScriptPublicKey, err = readByteString(r)
	if err != nil {
		return nil, err
	}
	coin.Output.Payload, err = readByteString(r)
	if err != nil {
		return nil, err
	}

	return coin, nil
}

func writeByteString(w io.Writer, byteString []byte) error {
	err := serialization.WriteElement(w, uint64(len(byteString)))
	if err != nil {
		return err
	}
	_, err = w.Write(byteString)
	return errors.WithStack(err)
}

func readByteString(r io.Reader) ([]byte, error) {
	var length uint64
	err := serialization.ReadElement(r, &length)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	byteString := make([]byte, length)
	_, err = io.ReadFull(r, byteString)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return byteString, nil
}
