package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "CHAINLEDGER"

type Chain string

const (
	Chain_CosmosHub Chain = "cosmoshub"
	Chain_Osmosis   Chain = "osmosis"
	Chain_Juno      Chain = "juno"
)

func (c Chain) String() string {
	return string(c)
}

// ChainParams carries the statically known facts about a chain's native
// staking asset and its public registry endpoint.
type ChainParams struct {
	BaseDenom    string
	BaseSymbol   string
	BaseDecimals int32
	Bech32Prefix string
	RegistryURL  string
}

var chainParams = map[Chain]ChainParams{
	Chain_CosmosHub: {
		BaseDenom:    "uatom",
		BaseSymbol:   "ATOM",
		BaseDecimals: 6,
		Bech32Prefix: "cosmos",
		RegistryURL:  "https://rest.cosmos.directory/cosmoshub",
	},
	Chain_Osmosis: {
		BaseDenom:    "uosmo",
		BaseSymbol:   "OSMO",
		BaseDecimals: 6,
		Bech32Prefix: "osmo",
		RegistryURL:  "https://rest.cosmos.directory/osmosis",
	},
	Chain_Juno: {
		BaseDenom:    "ujuno",
		BaseSymbol:   "JUNO",
		BaseDecimals: 6,
		Bech32Prefix: "juno",
		RegistryURL:  "https://rest.cosmos.directory/juno",
	},
}

func ParseChain(name string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := chainParams[c]; !ok {
		return "", fmt.Errorf("unsupported chain '%s'", name)
	}
	return c, nil
}

func (c Chain) Params() ChainParams {
	return chainParams[c]
}

type DenomsConfig struct {
	CachePath string
	// LookupTransport selects how unknown bridge hashes are resolved:
	// "registry" (HTTP) or "node" (exec of a chain client binary).
	LookupTransport string
	NodeBinary      string
	NodeURL         string
	// UnresolvedDecimals is the precision assumed for bridged assets whose
	// metadata only yields a base symbol. 6 for most chains, 18 for
	// EVM-generation ones.
	UnresolvedDecimals int32
}

type ClassifierConfig struct {
	// SuppressDelegateRewards drops the delegate processor's own
	// auto-claimed-reward detection whenever a reward withdrawal is part of
	// the same transaction, so the same transfer event is not counted twice.
	SuppressDelegateRewards bool
}

type RewardsConfig struct {
	LookupDelay time.Duration
}

type PrometheusConfig struct {
	Enabled bool
	Port    int
}

type Config struct {
	Debug            bool
	Chain            Chain
	WalletAddress    string
	DataDir          string
	OutputDir        string
	Transformer      string
	DenomsConfig     DenomsConfig
	ClassifierConfig ClassifierConfig
	RewardsConfig    RewardsConfig
	PrometheusConfig PrometheusConfig
}

// Flag name constants, bound to env vars through viper with the kebab
// names converted to snake case.
const (
	Debug                    = "debug"
	ChainFlag                = "chain"
	WalletAddress            = "wallet-address"
	DataDir                  = "data-dir"
	OutputDir                = "output-dir"
	Transformer              = "transformer"
	DenomsCachePath          = "denoms.cache-path"
	DenomsLookupTransport    = "denoms.lookup-transport"
	DenomsNodeBinary         = "denoms.node-binary"
	DenomsNodeURL            = "denoms.node-url"
	DenomsUnresolvedDecimals = "denoms.unresolved-decimals"
	SuppressDelegateRewards  = "classifier.suppress-delegate-rewards"
	RewardsLookupDelay       = "rewards.lookup-delay"
	PrometheusEnabled        = "prometheus.enabled"
	PrometheusPort           = "prometheus.port"
)

var kebabRegex = regexp.MustCompile(`[-.]`)

func KebabToSnakeCase(s string) string {
	return kebabRegex.ReplaceAllString(s, "_")
}

// NewConfig builds a Config from whatever viper has accumulated from
// flags and environment variables.
func NewConfig() *Config {
	chain, err := ParseChain(viper.GetString(KebabToSnakeCase(ChainFlag)))
	if err != nil {
		panic(err)
	}
	return &Config{
		Debug:         viper.GetBool(KebabToSnakeCase(Debug)),
		Chain:         chain,
		WalletAddress: viper.GetString(KebabToSnakeCase(WalletAddress)),
		DataDir:       viper.GetString(KebabToSnakeCase(DataDir)),
		OutputDir:     viper.GetString(KebabToSnakeCase(OutputDir)),
		Transformer:   viper.GetString(KebabToSnakeCase(Transformer)),
		DenomsConfig: DenomsConfig{
			CachePath:          viper.GetString(KebabToSnakeCase(DenomsCachePath)),
			LookupTransport:    viper.GetString(KebabToSnakeCase(DenomsLookupTransport)),
			NodeBinary:         viper.GetString(KebabToSnakeCase(DenomsNodeBinary)),
			NodeURL:            viper.GetString(KebabToSnakeCase(DenomsNodeURL)),
			UnresolvedDecimals: viper.GetInt32(KebabToSnakeCase(DenomsUnresolvedDecimals)),
		},
		ClassifierConfig: ClassifierConfig{
			SuppressDelegateRewards: viper.GetBool(KebabToSnakeCase(SuppressDelegateRewards)),
		},
		RewardsConfig: RewardsConfig{
			LookupDelay: viper.GetDuration(KebabToSnakeCase(RewardsLookupDelay)),
		},
		PrometheusConfig: PrometheusConfig{
			Enabled: viper.GetBool(KebabToSnakeCase(PrometheusEnabled)),
			Port:    viper.GetInt(KebabToSnakeCase(PrometheusPort)),
		},
	}
}

// LedgerFilePath is the location of the canonical ledger CSV for the
// configured chain.
func (c *Config) LedgerFilePath() string {
	return fmt.Sprintf("%s/%s_data.csv", strings.TrimRight(c.OutputDir, "/"), c.Chain)
}

// TimeoutFilePath is the side file collecting correlation keys of IBC
// transfers that timed out.
func (c *Config) TimeoutFilePath() string {
	return fmt.Sprintf("%s/%s_timeout_txs.txt", strings.TrimRight(c.OutputDir, "/"), c.Chain)
}

// InputFilePath is the dumped transaction history for the configured chain.
func (c *Config) InputFilePath() string {
	return fmt.Sprintf("%s/%s.json", strings.TrimRight(c.DataDir, "/"), c.Chain)
}
