package dto

// TokenInfo is the JSON view of one token inside a pair response.
type TokenInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// PairResponse is the JSON body served for /pair. Reserves and supply are
// exact decimal strings.
type PairResponse struct {
	Pair        string    `json:"pair"`
	Token0      TokenInfo `json:"token0"`
	Token1      TokenInfo `json:"token1"`
	Reserve0    string    `json:"reserve0"`
	Reserve1    string    `json:"reserve1"`
	TotalSupply string    `json:"total_supply"`
}

// ErrorResponse is the JSON error envelope: a stable classification code
// plus a human readable cause.
type ErrorResponse struct {
	Error string `json:"error"`
	Cause string `json:"cause,omitempty"`
}
