package main

import (
	"os"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/pairlens/pairlens/internal/config"
	"github.com/pairlens/pairlens/internal/multicall"
	"github.com/pairlens/pairlens/internal/pair"
	"github.com/pairlens/pairlens/internal/service"
	transport "github.com/pairlens/pairlens/internal/transport/http"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("config.Load")
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		log.Fatal().Err(err).Msg("ethclient.Dial")
	}
	defer client.Close()

	agg, err := multicall.NewAggregator(&multicall.Config{
		Contract: cfg.MulticallAddress(),
		Caller:   client,
		Registry: prometheus.DefaultRegisterer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("multicall.NewAggregator")
	}

	resolver := pair.NewResolver(agg, cfg.DefaultPairAddress())
	svc := service.NewSnapshotService(resolver)

	srv, err := transport.NewServer(svc, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("transport.NewServer")
	}

	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("srv.ListenAndServe")
	}
}
