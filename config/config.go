// Package config resolves network profiles and client configuration for the
// SDK. Profiles map a short network name to its chain id and a default RPC
// endpoint; unknown names are a configuration error.
package config

import (
	_ "embed"
	"fmt"
	"math/big"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed networks.yaml
var networksByte []byte

// NetworkProfile is the resolved identity of a supported network.
type NetworkProfile struct {
	Name    string
	ChainID *big.Int
	RPCURL  string
}

type networkEntry struct {
	ChainID int64  `yaml:"chain-id"`
	RPCURL  string `yaml:"rpc-url"`
}

type networkTable struct {
	Networks map[string]networkEntry `yaml:"networks"`
}

// Network resolves a short network name to its profile. The returned
// profile carries the default RPC endpoint, which callers may override.
func Network(name string) (*NetworkProfile, error) {
	var table networkTable
	if err := yaml.Unmarshal(networksByte, &table); err != nil {
		return nil, fmt.Errorf("failed to parse network table: %w", err)
	}

	entry, ok := table.Networks[name]
	if !ok {
		return nil, fmt.Errorf("unknown network %q", name)
	}

	return &NetworkProfile{
		Name:    name,
		ChainID: big.NewInt(entry.ChainID),
		RPCURL:  entry.RPCURL,
	}, nil
}

// Config is the client configuration loaded from a YAML file.
type Config struct {
	Log      string `yaml:"log"`
	Network  string `yaml:"network" validate:"required"`
	RPCURL   string `yaml:"rpc-url" validate:"omitempty,url"`
	Contract string `yaml:"contract" validate:"required,len=42,startswith=0x"`
	Key      string `yaml:"key" validate:"required"`
}

// NewConfig reads and validates a client configuration file.
func NewConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	conf := &Config{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return conf, nil
}

func (c Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel, err // fall back to Info
	}

	return level, nil
}
