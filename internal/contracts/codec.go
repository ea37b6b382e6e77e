package contracts

import (
	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/apperrors"
)

const wordSize = 32

// Pack encodes a call to fn as selector-prefixed calldata. Arguments that do
// not match the registered signature fail with apperrors.ErrArgumentMismatch.
func Pack(fn Function, args ...interface{}) ([]byte, error) {
	b, ok := bindings[fn]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrUnknownFunction, "contracts.Pack: function %d", fn)
	}

	packed, err := b.method.Inputs.Pack(args...)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrArgumentMismatch, "contracts.Pack %s: %v", b.method.Name, err)
	}

	out := make([]byte, 0, len(b.method.ID)+len(packed))
	out = append(out, b.method.ID...)
	out = append(out, packed...)

	return out, nil
}

// Unpack decodes a return blob strictly against fn's output signature: the
// blob must be word aligned, exactly sized for all-static outputs and at
// least the minimum size for dynamic ones. Anything else fails with
// apperrors.ErrDecode carrying the function name.
func Unpack(fn Function, data []byte) ([]interface{}, error) {
	b, ok := bindings[fn]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrUnknownFunction, "contracts.Unpack: function %d", fn)
	}

	if err := checkReturnSize(b, data); err != nil {
		return nil, errors.Wrapf(apperrors.ErrDecode, "contracts.Unpack %s: %v", b.method.Name, err)
	}

	out, err := b.method.Outputs.Unpack(data)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrDecode, "contracts.Unpack %s: %v", b.method.Name, err)
	}

	return out, nil
}

func checkReturnSize(b binding, data []byte) error {
	if len(data)%wordSize != 0 {
		return errors.Errorf("return data length %d is not word aligned", len(data))
	}

	if b.fixedSize > 0 && len(data) != b.fixedSize {
		return errors.Errorf("return data length %d, want %d", len(data), b.fixedSize)
	}

	if b.minSize > 0 && len(data) < b.minSize {
		return errors.Errorf("return data length %d, want at least %d", len(data), b.minSize)
	}

	return nil
}
