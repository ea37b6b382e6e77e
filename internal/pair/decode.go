package pair

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/contracts"
)

func decodeAddress(fn contracts.Function, blob []byte) (common.Address, error) {
	out, err := contracts.Unpack(fn, blob)
	if err != nil {
		return common.Address{}, err
	}

	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, errors.Wrapf(apperrors.ErrDecode,
			"pair: failed to cast %s result to address", fn.Name())
	}

	return addr, nil
}

func decodeBig(fn contracts.Function, blob []byte) (*big.Int, error) {
	out, err := contracts.Unpack(fn, blob)
	if err != nil {
		return nil, err
	}

	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrDecode,
			"pair: failed to cast %s result to *big.Int", fn.Name())
	}

	return value, nil
}

func decodeString(fn contracts.Function, blob []byte) (string, error) {
	out, err := contracts.Unpack(fn, blob)
	if err != nil {
		return "", err
	}

	s, ok := out[0].(string)
	if !ok {
		return "", errors.Wrapf(apperrors.ErrDecode,
			"pair: failed to cast %s result to string", fn.Name())
	}

	return s, nil
}

func decodeUint8(fn contracts.Function, blob []byte) (uint8, error) {
	out, err := contracts.Unpack(fn, blob)
	if err != nil {
		return 0, err
	}

	v, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Wrapf(apperrors.ErrDecode,
			"pair: failed to cast %s result to uint8", fn.Name())
	}

	return v, nil
}

// decodeReserves propagates the two reserve words of getReserves and drops
// the trailing block timestamp.
func decodeReserves(blob []byte) (*big.Int, *big.Int, error) {
	out, err := contracts.Unpack(contracts.PairGetReserves, blob)
	if err != nil {
		return nil, nil, err
	}

	reserveNames := []string{"reserve0", "reserve1"}
	reserves := make([]*big.Int, len(reserveNames))

	for i := range reserveNames {
		reserve, ok := out[i].(*big.Int)
		if !ok {
			return nil, nil, errors.Wrapf(apperrors.ErrDecode,
				"pair: failed to cast %s to *big.Int", reserveNames[i])
		}
		reserves[i] = reserve
	}

	return reserves[0], reserves[1], nil
}

func decodeTokenInfo(addr common.Address, nameBlob, symbolBlob, decimalsBlob []byte) (TokenInfo, error) {
	name, err := decodeString(contracts.TokenName, nameBlob)
	if err != nil {
		return TokenInfo{}, err
	}

	symbol, err := decodeString(contracts.TokenSymbol, symbolBlob)
	if err != nil {
		return TokenInfo{}, err
	}

	dec, err := decodeUint8(contracts.TokenDecimals, decimalsBlob)
	if err != nil {
		return TokenInfo{}, err
	}

	return TokenInfo{
		Address:  addr,
		Name:     name,
		Symbol:   symbol,
		Decimals: dec,
	}, nil
}
