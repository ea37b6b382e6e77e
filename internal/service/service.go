package service

import (
	"context"

	"github.com/pairlens/pairlens/internal/pair"
	"github.com/pairlens/pairlens/internal/service/dto"
)

// Service represents interface for business logic.
type Service interface {
	Lookup(ctx context.Context, address string) (*dto.PairSnapshot, error)
}

// SnapshotService represents struct for business logic.
type SnapshotService struct {
	resolver pair.Resolver
}

// NewSnapshotService creates SnapshotService.
func NewSnapshotService(resolver pair.Resolver) *SnapshotService {
	return &SnapshotService{resolver: resolver}
}
