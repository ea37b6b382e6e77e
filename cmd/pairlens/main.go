package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/config"
	"github.com/pairlens/pairlens/internal/multicall"
	"github.com/pairlens/pairlens/internal/pair"
	"github.com/pairlens/pairlens/internal/service"
	"github.com/pairlens/pairlens/internal/service/dto"
)

var (
	configFlag  = flag.String("config", "cfg/config.yaml", "path to the config file")
	addressFlag = flag.String("address", "", "pair address to inspect, the configured default pair when empty")
	timeoutFlag = flag.Duration("timeout", 10*time.Second, "overall deadline for the two batch round trips")
)

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config.Load", err)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		fatal("ethclient.Dial", err)
	}
	defer client.Close()

	agg, err := multicall.NewAggregator(&multicall.Config{
		Contract: cfg.MulticallAddress(),
		Caller:   client,
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		fatal("multicall.NewAggregator", err)
	}

	svc := service.NewSnapshotService(pair.NewResolver(agg, cfg.DefaultPairAddress()))

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	out, err := svc.Lookup(ctx, *addressFlag)
	if err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "%s: %v\n", apperrors.Code(err), err)
		os.Exit(1)
	}

	fmt.Printf("%-13s", "pair")
	color.New(color.FgCyan).Printf("%s\n", out.Pair.Hex())
	printToken("token0", out.Token0)
	printToken("token1", out.Token1)
	fmt.Printf("%-13s%s %s\n", "reserve0", out.Reserve0, out.Token0.Symbol)
	fmt.Printf("%-13s%s %s\n", "reserve1", out.Reserve1, out.Token1.Symbol)
	fmt.Printf("%-13s", "total supply")
	color.New(color.FgYellow).Printf("%s\n", out.TotalSupply)
}

func printToken(label string, t dto.TokenInfo) {
	fmt.Printf("%-13s", label)
	color.New(color.FgCyan).Printf("%s  ", t.Address.Hex())
	color.New(color.FgGreen).Printf("%-8s", t.Symbol)
	fmt.Printf("%s (decimals %d)\n", t.Name, t.Decimals)
}

func fatal(op string, err error) {
	color.New(color.FgHiRed).Fprintf(os.Stderr, "%s: %v\n", op, err)
	os.Exit(1)
}
