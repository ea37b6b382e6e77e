package pair

import (
	"context"

	"github.com/pairlens/pairlens/internal/multicall"
)

// Batcher executes one aggregated round trip per call. *multicall.Aggregator
// satisfies it.
type Batcher interface {
	Execute(ctx context.Context, calls []multicall.Call) ([][]byte, error)
}
