// Package contracts holds the closed signature sets the snapshot engine is
// allowed to encode and decode: the constant-product pair read surface, the
// ERC-20 metadata surface and the aggregation contract entry point. Nothing
// outside these sets can be packed or unpacked.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/apperrors"
)

const pairABIJSON = `[
	{"inputs":[],"name":"token0","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token1","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getReserves","outputs":[{"internalType":"uint112","name":"_reserve0","type":"uint112"},{"internalType":"uint112","name":"_reserve1","type":"uint112"},{"internalType":"uint32","name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const tokenABIJSON = `[
	{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

const multicallABIJSON = `[
	{"inputs":[{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"bytes","name":"callData","type":"bytes"}],"internalType":"struct Multicall.Call[]","name":"calls","type":"tuple[]"}],"name":"aggregate","outputs":[{"internalType":"uint256","name":"blockNumber","type":"uint256"},{"internalType":"bytes[]","name":"returnData","type":"bytes[]"}],"stateMutability":"nonpayable","type":"function"}
]`

// Kind identifies one of the registered contract signature sets.
type Kind int

const (
	KindPair Kind = iota + 1
	KindToken
	KindMulticall
)

// Function identifies a single registered contract function.
type Function int

const (
	PairToken0 Function = iota + 1
	PairToken1
	PairGetReserves
	PairTotalSupply
	TokenName
	TokenSymbol
	TokenDecimals
	MulticallAggregate
)

type binding struct {
	kind   Kind
	method abi.Method
	// fixedSize is the exact return blob length for functions whose outputs
	// are all static; 0 when any output is dynamic.
	fixedSize int
	// minSize is the smallest well-formed return blob length for functions
	// with dynamic outputs.
	minSize int
}

var (
	pairABI      abi.ABI
	tokenABI     abi.ABI
	multicallABI abi.ABI

	bindings map[Function]binding
	byName   map[Kind]map[string]Function
)

func init() {
	pairABI = mustABI(pairABIJSON)
	tokenABI = mustABI(tokenABIJSON)
	multicallABI = mustABI(multicallABIJSON)

	bindings = make(map[Function]binding)
	byName = map[Kind]map[string]Function{
		KindPair:      make(map[string]Function),
		KindToken:     make(map[string]Function),
		KindMulticall: make(map[string]Function),
	}

	register(KindPair, pairABI, "token0", PairToken0)
	register(KindPair, pairABI, "token1", PairToken1)
	register(KindPair, pairABI, "getReserves", PairGetReserves)
	register(KindPair, pairABI, "totalSupply", PairTotalSupply)
	register(KindToken, tokenABI, "name", TokenName)
	register(KindToken, tokenABI, "symbol", TokenSymbol)
	register(KindToken, tokenABI, "decimals", TokenDecimals)
	register(KindMulticall, multicallABI, "aggregate", MulticallAggregate)
}

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("contracts: failed to parse ABI: " + err.Error())
	}
	return parsed
}

func register(kind Kind, parsed abi.ABI, name string, fn Function) {
	method, ok := parsed.Methods[name]
	if !ok {
		panic("contracts: method not in ABI: " + name)
	}

	b := binding{kind: kind, method: method}

	// Every static output in the registered sets occupies exactly one
	// 32-byte word; each dynamic output adds at least a length word after
	// its offset word.
	dynamic := 0
	for _, out := range method.Outputs {
		if isDynamic(out.Type) {
			dynamic++
		}
	}
	if dynamic == 0 {
		b.fixedSize = wordSize * len(method.Outputs)
	} else {
		b.minSize = wordSize * (len(method.Outputs) + dynamic)
	}

	bindings[fn] = b
	byName[kind][name] = fn
}

func isDynamic(t abi.Type) bool {
	switch t.T {
	case abi.StringTy, abi.BytesTy, abi.SliceTy:
		return true
	default:
		return false
	}
}

// Lookup resolves a function name inside a signature set. Names outside the
// set fail with apperrors.ErrUnknownFunction.
func Lookup(kind Kind, name string) (Function, error) {
	set, ok := byName[kind]
	if !ok {
		return 0, errors.Wrapf(apperrors.ErrUnknownFunction, "contracts.Lookup: unknown kind %d", kind)
	}

	fn, ok := set[name]
	if !ok {
		return 0, errors.Wrapf(apperrors.ErrUnknownFunction, "contracts.Lookup: %q", name)
	}

	return fn, nil
}

// Name returns the registered ABI name of the function.
func (f Function) Name() string {
	return bindings[f].method.Name
}

// Kind returns the signature set the function belongs to.
func (f Function) Kind() Kind {
	return bindings[f].kind
}

// Selector returns the 4-byte call selector of the function.
func (f Function) Selector() []byte {
	return bindings[f].method.ID
}
