// Package validate checks addresses at the string boundary. Past it, only
// well-formed addresses circulate.
package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/apperrors"
)

// PairAddress parses a user supplied pair address. Only full 20-byte hex
// strings are accepted and the zero address is rejected.
func PairAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(apperrors.ErrInvalidAddress, "validate.PairAddress: %q", s)
	}

	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, errors.Wrap(apperrors.ErrInvalidAddress, "validate.PairAddress: zero address")
	}

	return addr, nil
}
