package multicall

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/pairlens/pairlens/internal/contracts"
)

// Call is one read invocation inside an aggregated batch. The field layout
// matches the aggregate() tuple, so a []Call packs directly as calldata.
type Call struct {
	Target   common.Address
	CallData []byte
}

// NewCall encodes a call to fn on target with the given arguments.
func NewCall(target common.Address, fn contracts.Function, args ...interface{}) (Call, error) {
	data, err := contracts.Pack(fn, args...)
	if err != nil {
		return Call{}, err
	}

	return Call{Target: target, CallData: data}, nil
}
