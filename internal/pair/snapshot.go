package pair

import "github.com/ethereum/go-ethereum/common"

// TokenInfo describes one side of a pair.
type TokenInfo struct {
	Address  common.Address
	Name     string
	Symbol   string
	Decimals uint8
}

// Snapshot is a fully resolved view of one pair: both token contracts, their
// metadata, the reserves and the LP total supply. Reserves and supply are
// exact decimal strings. A Snapshot is only ever built whole; there are no
// partially filled snapshots.
type Snapshot struct {
	Pair        common.Address
	Token0      TokenInfo
	Token1      TokenInfo
	Reserve0    string
	Reserve1    string
	TotalSupply string
}
