package contracts

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/pairlens/pairlens/internal/apperrors"
)

func TestSelectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   Function
		sig  string
		hex  string
	}{
		{"token0", PairToken0, "token0()", "0dfe1681"},
		{"token1", PairToken1, "token1()", "d21220a7"},
		{"getReserves", PairGetReserves, "getReserves()", "0902f1ac"},
		{"totalSupply", PairTotalSupply, "totalSupply()", "18160ddd"},
		{"name", TokenName, "name()", "06fdde03"},
		{"symbol", TokenSymbol, "symbol()", "95d89b41"},
		{"decimals", TokenDecimals, "decimals()", "313ce567"},
		{"aggregate", MulticallAggregate, "aggregate((address,bytes)[])", "252dba42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := crypto.Keccak256([]byte(tt.sig))[:4]
			require.Equal(t, want, tt.fn.Selector())
			require.Equal(t, tt.hex, hex.EncodeToString(tt.fn.Selector()))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("resolves registered names", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			kind Kind
			name string
			want Function
		}{
			{KindPair, "token0", PairToken0},
			{KindPair, "token1", PairToken1},
			{KindPair, "getReserves", PairGetReserves},
			{KindPair, "totalSupply", PairTotalSupply},
			{KindToken, "name", TokenName},
			{KindToken, "symbol", TokenSymbol},
			{KindToken, "decimals", TokenDecimals},
			{KindMulticall, "aggregate", MulticallAggregate},
		}

		for _, tt := range tests {
			fn, err := Lookup(tt.kind, tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, fn)
		}
	})

	t.Run("name from another set", func(t *testing.T) {
		t.Parallel()

		// name() belongs to the token set, not the pair set.
		_, err := Lookup(KindPair, "name")
		require.ErrorIs(t, err, apperrors.ErrUnknownFunction)
	})

	t.Run("unregistered name", func(t *testing.T) {
		t.Parallel()

		_, err := Lookup(KindToken, "mint")
		require.ErrorIs(t, err, apperrors.ErrUnknownFunction)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := Lookup(Kind(42), "token0")
		require.ErrorIs(t, err, apperrors.ErrUnknownFunction)
	})
}

func TestFunctionMetadata(t *testing.T) {
	t.Parallel()

	require.Equal(t, "getReserves", PairGetReserves.Name())
	require.Equal(t, KindPair, PairGetReserves.Kind())
	require.Equal(t, "aggregate", MulticallAggregate.Name())
	require.Equal(t, KindMulticall, MulticallAggregate.Kind())
	require.Equal(t, "decimals", TokenDecimals.Name())
	require.Equal(t, KindToken, TokenDecimals.Kind())
}
