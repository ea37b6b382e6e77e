package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidAddress is returned when a pair or token address is
	// malformed or the zero address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownFunction is returned when a function name is not part of
	// the registered signature set for a contract kind.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrArgumentMismatch is returned when call arguments do not match
	// the registered function signature.
	ErrArgumentMismatch = errors.New("argument mismatch")

	// ErrAggregationFailed is returned when the batched multicall round
	// trip fails as a whole: transport error, revert or a malformed
	// aggregate envelope.
	ErrAggregationFailed = errors.New("aggregation failed")

	// ErrDecode is returned when a per-call return blob does not decode
	// against the registered function signature.
	ErrDecode = errors.New("decode error")
)

// Code maps an error chain to the stable classification code exposed on
// transport boundaries.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrUnknownFunction):
		return "unknown_function"
	case errors.Is(err, ErrArgumentMismatch):
		return "argument_mismatch"
	case errors.Is(err, ErrAggregationFailed):
		return "aggregation_failed"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	default:
		return "internal_error"
	}
}
