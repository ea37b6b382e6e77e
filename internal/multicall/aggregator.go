// Package multicall ships batches of read-only contract calls to the chain
// as single aggregate() round trips.
package multicall

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/contracts"
)

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Config wires the aggregator dependencies.
type Config struct {
	// Contract is the address of the deployed aggregation contract.
	Contract common.Address
	Caller   EthCaller
	Registry prometheus.Registerer
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.Contract == (common.Address{}) {
		return errors.New("config: Contract is required")
	}
	if c.Caller == nil {
		return errors.New("config: Caller is required")
	}
	if c.Registry == nil {
		return errors.New("config: Registry is required")
	}
	return nil
}

// Aggregator executes call batches through the aggregation contract, one
// eth_call per batch.
type Aggregator struct {
	contract common.Address
	caller   EthCaller
	metrics  *Metrics
}

// NewAggregator creates an Aggregator from the configuration.
func NewAggregator(cfg *Config) (*Aggregator, error) {
	if cfg == nil {
		return nil, errors.New("config: nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Aggregator{
		contract: cfg.Contract,
		caller:   cfg.Caller,
		metrics:  NewMetrics(cfg.Registry),
	}, nil
}

// Execute performs one aggregated round trip and returns the raw return
// blobs positionally aligned with calls. The batch fails as a whole: a
// transport error, revert, malformed envelope or a result count that does
// not match the call count yields apperrors.ErrAggregationFailed and no
// partial results. An empty batch returns without touching the network.
// There are no retries.
func (a *Aggregator) Execute(ctx context.Context, calls []Call) ([][]byte, error) {
	if len(calls) == 0 {
		return [][]byte{}, nil
	}

	timer := prometheus.NewTimer(a.metrics.batchDuration.WithLabelValues())
	defer timer.ObserveDuration()

	data, err := contracts.Pack(contracts.MulticallAggregate, calls)
	if err != nil {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrap(err, "contracts.Pack")
	}

	res, err := a.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &a.contract,
		Data: data,
	}, nil)
	if err != nil {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrapf(apperrors.ErrAggregationFailed, "multicall.Execute: %v", err)
	}

	out, err := contracts.Unpack(contracts.MulticallAggregate, res)
	if err != nil {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrapf(apperrors.ErrAggregationFailed, "multicall.Execute: bad aggregate envelope: %v", err)
	}

	block, ok := out[0].(*big.Int)
	if !ok {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrap(apperrors.ErrAggregationFailed, "multicall.Execute: failed to cast block number")
	}

	returned, ok := out[1].([][]byte)
	if !ok {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrap(apperrors.ErrAggregationFailed, "multicall.Execute: failed to cast return data")
	}

	if len(returned) != len(calls) {
		a.metrics.batchesTotal.WithLabelValues(outcomeError).Inc()
		return nil, errors.Wrapf(apperrors.ErrAggregationFailed,
			"multicall.Execute: %d results for %d calls", len(returned), len(calls))
	}

	a.metrics.batchesTotal.WithLabelValues(outcomeOK).Inc()
	a.metrics.callsTotal.Add(float64(len(calls)))

	log.Debug().
		Str("block", block.String()).
		Int("calls", len(calls)).
		Msg("aggregated batch executed")

	return returned, nil
}
