package hashes

import (
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/consensus/model/externalapi"
)

// FromBytes creates a DomainHash from the given byte slice
func FromBytes(hashBytes []byte) (*externalapi.DomainHash, error) {
	if len(hashBytes) != externalapi.DomainHashSize {
		return nil, errors.Errorf("invalid hash size. Want: %d, got: %d",
			externalapi.DomainHashSize, len(hashBytes))
	}
	return externalapi.NewDomainHashFromByteSlice(hashBytes)
}
