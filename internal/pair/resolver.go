// Package pair resolves a liquidity pair contract into a complete snapshot
// using exactly two aggregated round trips: one batch against the pair
// itself, then one batch against the two token contracts it revealed.
package pair

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/contracts"
	"github.com/pairlens/pairlens/internal/decimals"
	"github.com/pairlens/pairlens/internal/multicall"
	"github.com/pairlens/pairlens/internal/pair/validate"
)

// LP tokens are minted with 18 decimals regardless of what the underlying
// tokens use; the total supply is normalized with this fixed scale.
const lpTokenDecimals = 18

// Pair batch layout. Decoding is positional, so the order is fixed.
const (
	pairIdxToken0 = iota
	pairIdxToken1
	pairIdxReserves
	pairIdxSupply
	pairBatchSize
)

// Token batch layout: token0's three reads, then token1's.
const (
	tokenIdxName0 = iota
	tokenIdxSymbol0
	tokenIdxDecimals0
	tokenIdxName1
	tokenIdxSymbol1
	tokenIdxDecimals1
	tokenBatchSize
)

// Resolver resolves pair addresses into snapshots.
type Resolver interface {
	// Resolve runs the full two-batch pipeline for the given pair address.
	// An empty address selects the configured default pair.
	Resolve(ctx context.Context, address string) (*Snapshot, error)
}

type pairResolver struct {
	batcher     Batcher
	defaultPair common.Address
}

// NewResolver creates a Resolver on top of a batch executor. The default
// pair is used whenever Resolve receives an empty address.
func NewResolver(batcher Batcher, defaultPair common.Address) Resolver {
	return &pairResolver{
		batcher:     batcher,
		defaultPair: defaultPair,
	}
}

// resolution is the per-invocation state of one Resolve call. Concurrent
// invocations never share one.
type resolution struct {
	phase Phase

	pair common.Address

	token0Addr common.Address
	token1Addr common.Address
	reserve0   *big.Int
	reserve1   *big.Int
	supply     *big.Int

	token0 TokenInfo
	token1 TokenInfo

	snapshot *Snapshot
}

func (r *pairResolver) Resolve(ctx context.Context, address string) (*Snapshot, error) {
	res := &resolution{phase: PhaseIdle}

	if err := r.run(ctx, res, address); err != nil {
		failed := res.phase
		res.phase = PhaseFailed
		return nil, errors.Wrapf(err, "pair.Resolve: %s", failed)
	}

	return res.snapshot, nil
}

func (r *pairResolver) run(ctx context.Context, res *resolution, address string) error {
	if err := r.acceptAddress(res, address); err != nil {
		return err
	}

	pairBlobs, err := r.fetchPairBatch(ctx, res)
	if err != nil {
		return err
	}
	if err := r.decodePairBatch(res, pairBlobs); err != nil {
		return err
	}

	tokenBlobs, err := r.fetchTokenBatch(ctx, res)
	if err != nil {
		return err
	}
	if err := r.decodeTokenBatch(res, tokenBlobs); err != nil {
		return err
	}

	r.normalize(res)

	return nil
}

// acceptAddress picks the pair to resolve. Nothing has touched the network
// yet, so a malformed address fails before any round trip.
func (r *pairResolver) acceptAddress(res *resolution, address string) error {
	if address == "" {
		res.pair = r.defaultPair
		return nil
	}

	addr, err := validate.PairAddress(address)
	if err != nil {
		return err
	}

	res.pair = addr

	return nil
}

func (r *pairResolver) fetchPairBatch(ctx context.Context, res *resolution) ([][]byte, error) {
	res.phase = PhaseFetchingPairBatch

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "context cancelled before pair batch")
	default:
	}

	fns := []contracts.Function{
		contracts.PairToken0,
		contracts.PairToken1,
		contracts.PairGetReserves,
		contracts.PairTotalSupply,
	}

	calls := make([]multicall.Call, 0, pairBatchSize)
	for _, fn := range fns {
		call, err := multicall.NewCall(res.pair, fn)
		if err != nil {
			return nil, errors.Wrap(err, "multicall.NewCall")
		}
		calls = append(calls, call)
	}

	blobs, err := r.batcher.Execute(ctx, calls)
	if err != nil {
		return nil, errors.Wrap(err, "batcher.Execute")
	}

	if len(blobs) != pairBatchSize {
		return nil, errors.Wrapf(apperrors.ErrAggregationFailed,
			"pair.fetchPairBatch: %d results for %d calls", len(blobs), pairBatchSize)
	}

	return blobs, nil
}

func (r *pairResolver) decodePairBatch(res *resolution, blobs [][]byte) error {
	res.phase = PhaseDecodingPairBatch

	token0, err := decodeAddress(contracts.PairToken0, blobs[pairIdxToken0])
	if err != nil {
		return err
	}

	token1, err := decodeAddress(contracts.PairToken1, blobs[pairIdxToken1])
	if err != nil {
		return err
	}

	reserve0, reserve1, err := decodeReserves(blobs[pairIdxReserves])
	if err != nil {
		return err
	}

	supply, err := decodeBig(contracts.PairTotalSupply, blobs[pairIdxSupply])
	if err != nil {
		return err
	}

	res.token0Addr, res.token1Addr = token0, token1
	res.reserve0, res.reserve1 = reserve0, reserve1
	res.supply = supply

	return nil
}

// fetchTokenBatch ships the metadata reads for both tokens. It can only run
// after the pair batch decoded, because the targets come from there.
func (r *pairResolver) fetchTokenBatch(ctx context.Context, res *resolution) ([][]byte, error) {
	res.phase = PhaseFetchingTokenBatch

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "context cancelled before token batch")
	default:
	}

	reads := []struct {
		target common.Address
		fn     contracts.Function
	}{
		{res.token0Addr, contracts.TokenName},
		{res.token0Addr, contracts.TokenSymbol},
		{res.token0Addr, contracts.TokenDecimals},
		{res.token1Addr, contracts.TokenName},
		{res.token1Addr, contracts.TokenSymbol},
		{res.token1Addr, contracts.TokenDecimals},
	}

	calls := make([]multicall.Call, 0, tokenBatchSize)
	for _, read := range reads {
		call, err := multicall.NewCall(read.target, read.fn)
		if err != nil {
			return nil, errors.Wrap(err, "multicall.NewCall")
		}
		calls = append(calls, call)
	}

	blobs, err := r.batcher.Execute(ctx, calls)
	if err != nil {
		return nil, errors.Wrap(err, "batcher.Execute")
	}

	if len(blobs) != tokenBatchSize {
		return nil, errors.Wrapf(apperrors.ErrAggregationFailed,
			"pair.fetchTokenBatch: %d results for %d calls", len(blobs), tokenBatchSize)
	}

	return blobs, nil
}

func (r *pairResolver) decodeTokenBatch(res *resolution, blobs [][]byte) error {
	res.phase = PhaseDecodingTokenBatch

	token0, err := decodeTokenInfo(res.token0Addr,
		blobs[tokenIdxName0], blobs[tokenIdxSymbol0], blobs[tokenIdxDecimals0])
	if err != nil {
		return errors.Wrap(err, "token0")
	}

	token1, err := decodeTokenInfo(res.token1Addr,
		blobs[tokenIdxName1], blobs[tokenIdxSymbol1], blobs[tokenIdxDecimals1])
	if err != nil {
		return errors.Wrap(err, "token1")
	}

	res.token0, res.token1 = token0, token1

	return nil
}

func (r *pairResolver) normalize(res *resolution) {
	res.phase = PhaseNormalizing

	res.snapshot = &Snapshot{
		Pair:        res.pair,
		Token0:      res.token0,
		Token1:      res.token1,
		Reserve0:    decimals.Format(res.reserve0, res.token0.Decimals),
		Reserve1:    decimals.Format(res.reserve1, res.token1.Decimals),
		TotalSupply: decimals.Format(res.supply, lpTokenDecimals),
	}

	res.phase = PhaseDone
}
