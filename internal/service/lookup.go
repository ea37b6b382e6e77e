package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pairlens/pairlens/internal/service/dto"
)

// Lookup resolves the pair behind address and maps it into the service dto.
// An empty address selects the configured default pair. Errors pass through
// with their classification intact; transports turn them into status codes.
func (s *SnapshotService) Lookup(ctx context.Context, address string) (*dto.PairSnapshot, error) {
	snap, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, errors.Wrap(err, "resolver.Resolve")
	}

	return &dto.PairSnapshot{
		Pair: snap.Pair,
		Token0: dto.TokenInfo{
			Address:  snap.Token0.Address,
			Name:     snap.Token0.Name,
			Symbol:   snap.Token0.Symbol,
			Decimals: snap.Token0.Decimals,
		},
		Token1: dto.TokenInfo{
			Address:  snap.Token1.Address,
			Name:     snap.Token1.Name,
			Symbol:   snap.Token1.Symbol,
			Decimals: snap.Token1.Decimals,
		},
		Reserve0:    snap.Reserve0,
		Reserve1:    snap.Reserve1,
		TotalSupply: snap.TotalSupply,
	}, nil
}
