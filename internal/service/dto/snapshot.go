package dto

import "github.com/ethereum/go-ethereum/common"

// TokenInfo describes one side of a resolved pair.
type TokenInfo struct {
	Address  common.Address
	Name     string
	Symbol   string
	Decimals uint8
}

// PairSnapshot is the business level view of a resolved pair. Reserves and
// supply are exact decimal strings.
type PairSnapshot struct {
	Pair        common.Address
	Token0      TokenInfo
	Token1      TokenInfo
	Reserve0    string
	Reserve1    string
	TotalSupply string
}
