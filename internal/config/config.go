package config

import (
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Mainnet deployments used when the config file leaves them unset: the
// Multicall aggregation contract and the USDC/WETH pair.
const (
	defaultMulticallAddr = "0xeefBa1e63905eF1D7ACbA5a8513c70307C1cE441"
	defaultPairAddr      = "0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"
)

// Config holds application configuration loaded from file.
type Config struct {
	RPCURL            string        `yaml:"rpc_url"`
	ListenAddr        string        `yaml:"listen_addr"`
	MulticallAddr     string        `yaml:"multicall_address"`
	DefaultPairAddr   string        `yaml:"default_pair_address"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// Load reads the config from a YAML file path and applies fallbacks for
// everything optional. Only rpc_url has no fallback.
func Load(path string) (Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "os.Open")
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close config file")
		}
	}(f)

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoder.Decode")
	}

	// Fallbacks
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.MulticallAddr == "" {
		cfg.MulticallAddr = defaultMulticallAddr
	}
	if cfg.DefaultPairAddr == "" {
		cfg.DefaultPairAddr = defaultPairAddr
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// validate collects every config problem instead of stopping at the first.
func (c *Config) validate() error {
	var err error

	if c.RPCURL == "" {
		err = multierr.Append(err, errors.New("config: rpc_url is required"))
	}
	if !common.IsHexAddress(c.MulticallAddr) {
		err = multierr.Append(err, errors.Errorf("config: multicall_address %q is not a valid address", c.MulticallAddr))
	}
	if !common.IsHexAddress(c.DefaultPairAddr) {
		err = multierr.Append(err, errors.Errorf("config: default_pair_address %q is not a valid address", c.DefaultPairAddr))
	}

	return err
}

// MulticallAddress returns the aggregation contract address.
func (c *Config) MulticallAddress() common.Address {
	return common.HexToAddress(c.MulticallAddr)
}

// DefaultPairAddress returns the pair resolved when a lookup names none.
func (c *Config) DefaultPairAddress() common.Address {
	return common.HexToAddress(c.DefaultPairAddr)
}
