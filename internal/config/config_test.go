package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KebabToSnakeCase(t *testing.T) {
	assert.Equal(t, "denoms_cache_path", KebabToSnakeCase(DenomsCachePath))
	assert.Equal(t, "wallet_address", KebabToSnakeCase(WalletAddress))
	assert.Equal(t, "debug", KebabToSnakeCase(Debug))
}

func Test_ParseChain(t *testing.T) {
	t.Run("Should accept the supported chains", func(t *testing.T) {
		for _, name := range []string{"cosmoshub", "osmosis", "juno"} {
			chain, err := ParseChain(name)
			assert.Nil(t, err)
			assert.Equal(t, name, chain.String())
		}
	})
	t.Run("Should normalize case and whitespace", func(t *testing.T) {
		chain, err := ParseChain("  OSMOSIS ")
		assert.Nil(t, err)
		assert.Equal(t, Chain_Osmosis, chain)
	})
	t.Run("Should reject unknown chains", func(t *testing.T) {
		_, err := ParseChain("bitcoin")
		assert.NotNil(t, err)
	})
}

func Test_ChainParams(t *testing.T) {
	params := Chain_CosmosHub.Params()
	assert.Equal(t, "uatom", params.BaseDenom)
	assert.Equal(t, "ATOM", params.BaseSymbol)
	assert.Equal(t, int32(6), params.BaseDecimals)
}

func Test_FilePaths(t *testing.T) {
	cfg := &Config{
		Chain:     Chain_Osmosis,
		DataDir:   "data/",
		OutputDir: "output/",
	}

	assert.Equal(t, "data/osmosis.json", cfg.InputFilePath())
	assert.Equal(t, "output/osmosis_data.csv", cfg.LedgerFilePath())
	assert.Equal(t, "output/osmosis_timeout_txs.txt", cfg.TimeoutFilePath())
}
