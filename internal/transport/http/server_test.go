package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/config"
	"github.com/pairlens/pairlens/internal/service/dto"
	"github.com/pairlens/pairlens/internal/service/mock"
	tdto "github.com/pairlens/pairlens/internal/transport/http/dto"
)

func testConfig() *config.Config {
	return &config.Config{
		GraceTimeout:      5 * time.Second,
		RequestTimeout:    5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func testSnapshot() *dto.PairSnapshot {
	return &dto.PairSnapshot{
		Pair: common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"),
		Token0: dto.TokenInfo{
			Address:  common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			Name:     "USD Coin",
			Symbol:   "USDC",
			Decimals: 6,
		},
		Token1: dto.TokenInfo{
			Address:  common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
			Name:     "Wrapped Ether",
			Symbol:   "WETH",
			Decimals: 18,
		},
		Reserve0:    "31000000",
		Reserve1:    "12000.5",
		TotalSupply: "0.000000000308280933",
	}
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("nil config", func(t *testing.T) {
		server, err := NewServer(mock.NewMockService(ctrl), nil)
		require.Error(t, err)
		require.Nil(t, server)
	})

	t.Run("valid config", func(t *testing.T) {
		server, err := NewServer(mock.NewMockService(ctrl), testConfig())
		require.NoError(t, err)
		require.NotNil(t, server)
	})
}

func TestPingHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, err := NewServer(mock.NewMockService(ctrl), testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()

	server.mux.ServeHTTP(w, req)

	resp := w.Result()
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Printf("Body.Close: %v", err)
		}
	}(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "pong", string(body))
}

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, err := NewServer(mock.NewMockService(ctrl), testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	server.mux.ServeHTTP(w, req)

	resp := w.Result()
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Printf("Body.Close: %v", err)
		}
	}(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "# HELP")
}

func TestPairHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	server, err := NewServer(mockService, testConfig())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		snap := testSnapshot()
		mockService.EXPECT().
			Lookup(gomock.Any(), snap.Pair.Hex()).
			Return(snap, nil)

		req := httptest.NewRequest("GET", "/pair?address="+snap.Pair.Hex(), nil)
		w := httptest.NewRecorder()

		server.mux.ServeHTTP(w, req)

		resp := w.Result()
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				log.Printf("Body.Close: %v", err)
			}
		}(resp.Body)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

		var got tdto.PairResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

		require.Equal(t, snap.Pair.Hex(), got.Pair)
		require.Equal(t, "USD Coin", got.Token0.Name)
		require.Equal(t, "USDC", got.Token0.Symbol)
		require.Equal(t, uint8(6), got.Token0.Decimals)
		require.Equal(t, snap.Token1.Address.Hex(), got.Token1.Address)
		require.Equal(t, uint8(18), got.Token1.Decimals)
		require.Equal(t, "31000000", got.Reserve0)
		require.Equal(t, "12000.5", got.Reserve1)
		require.Equal(t, "0.000000000308280933", got.TotalSupply)
	})

	t.Run("absent address goes through as empty", func(t *testing.T) {
		mockService.EXPECT().
			Lookup(gomock.Any(), "").
			Return(testSnapshot(), nil)

		req := httptest.NewRequest("GET", "/pair", nil)
		w := httptest.NewRecorder()

		server.mux.ServeHTTP(w, req)

		resp := w.Result()
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				log.Printf("Body.Close: %v", err)
			}
		}(resp.Body)

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	testServiceError := func(t *testing.T, serviceError error, wantStatus int, wantCode string) {
		mockService.EXPECT().
			Lookup(gomock.Any(), gomock.Any()).
			Return(nil, serviceError)

		req := httptest.NewRequest("GET", "/pair?address=0x1234567890123456789012345678901234567890", nil)
		w := httptest.NewRecorder()

		server.mux.ServeHTTP(w, req)

		resp := w.Result()
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				log.Printf("Body.Close: %v", err)
			}
		}(resp.Body)

		require.Equal(t, wantStatus, resp.StatusCode)

		var envelope tdto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		require.Equal(t, wantCode, envelope.Error)
	}

	t.Run("service error - invalid address", func(t *testing.T) {
		testServiceError(t,
			errors.Wrap(apperrors.ErrInvalidAddress, "pair.Resolve: idle"),
			http.StatusBadRequest, "invalid_address")
	})

	t.Run("service error - aggregation failed", func(t *testing.T) {
		testServiceError(t,
			errors.Wrap(apperrors.ErrAggregationFailed, "pair.Resolve: fetching_pair_batch"),
			http.StatusBadGateway, "aggregation_failed")
	})

	t.Run("service error - decode error", func(t *testing.T) {
		testServiceError(t,
			errors.Wrap(apperrors.ErrDecode, "pair.Resolve: decoding_token_batch"),
			http.StatusBadGateway, "decode_error")
	})

	t.Run("service error - unknown error", func(t *testing.T) {
		mockService.EXPECT().
			Lookup(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("something private"))

		req := httptest.NewRequest("GET", "/pair", nil)
		w := httptest.NewRecorder()

		server.mux.ServeHTTP(w, req)

		resp := w.Result()
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				log.Printf("Body.Close: %v", err)
			}
		}(resp.Body)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var envelope tdto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		require.Equal(t, "internal_error", envelope.Error)
		// Internal details stay inside.
		require.Equal(t, "internal error", envelope.Cause)
	})

	t.Run("wrong http method", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/pair", nil)
		w := httptest.NewRecorder()

		server.mux.ServeHTTP(w, req)

		resp := w.Result()
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				log.Printf("Body.Close: %v", err)
			}
		}(resp.Body)

		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestLogMiddleware(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, err := NewServer(mock.NewMockService(ctrl), testConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	originalLogger := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	defer func() { zlog.Logger = originalLogger }()

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()

	handler := server.logMiddleware(server.mux)
	handler.ServeHTTP(w, req)

	logContent := buf.String()
	require.Contains(t, logContent, "/ping")
	require.Contains(t, logContent, "GET")
}

func TestServer_ListenAndServe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, err := NewServer(mock.NewMockService(ctrl), testConfig())
	require.NoError(t, err)

	const addr = "localhost:0"

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
