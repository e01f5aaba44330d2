package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/internal/metrics"
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const inputHistory = `[
	{
		"txhash": "SEND1",
		"id": "1",
		"timestamp": "2022-01-15T10:30:00Z",
		"tx": {
			"@type": "/cosmos.tx.v1beta1.Tx",
			"body": {"messages": [{"@type": "/cosmos.bank.v1beta1.MsgSend"}]},
			"auth_info": {"fee": {"amount": [{"denom": "uatom", "amount": "2500"}], "gas_limit": "200000"}}
		},
		"logs": [{
			"msg_index": 0,
			"events": [
				{"type": "message", "attributes": [{"key": "action", "value": "/cosmos.bank.v1beta1.MsgSend"}]},
				{"type": "transfer", "attributes": [
					{"key": "recipient", "value": "cosmos1wallet"},
					{"key": "sender", "value": "cosmos1friend"},
					{"key": "amount", "value": "1000000uatom"}
				]}
			]
		}]
	},
	{
		"txhash": "FAILED1",
		"id": "2",
		"timestamp": "2022-01-16T09:00:00Z",
		"tx": {
			"@type": "/cosmos.tx.v1beta1.Tx",
			"body": {"messages": []},
			"auth_info": {"fee": {"amount": [{"denom": "uatom", "amount": "2000"}], "gas_limit": "200000"}}
		},
		"logs": []
	}
]`

func setup(t *testing.T) *config.Config {
	dataDir := t.TempDir()
	outputDir := t.TempDir()

	err := os.WriteFile(filepath.Join(dataDir, "cosmoshub.json"), []byte(inputHistory), 0644)
	assert.Nil(t, err)

	return &config.Config{
		Chain:         config.Chain_CosmosHub,
		WalletAddress: "cosmos1wallet",
		DataDir:       dataDir,
		OutputDir:     outputDir,
		DenomsConfig: config.DenomsConfig{
			CachePath:          filepath.Join(outputDir, "denoms.json"),
			LookupTransport:    "registry",
			UnresolvedDecimals: 6,
		},
		ClassifierConfig: config.ClassifierConfig{SuppressDelegateRewards: true},
	}
}

func Test_Run(t *testing.T) {
	cfg := setup(t)
	p := NewPipeline(cfg, metrics.NewMetrics(), zap.NewNop())

	diag, err := p.Run(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 2, diag.Processed)
	assert.Equal(t, 0, diag.Failures)

	rows, err := ledger.ReadRows(cfg.LedgerFilePath())
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rows))

	t.Run("Should write rows in input order", func(t *testing.T) {
		assert.Equal(t, "SEND1", rows[0].TransactionHash)
		assert.Equal(t, ledger.RowType_Deposit, rows[0].Type)
		assert.Equal(t, "ATOM", rows[0].ReceivedAsset)

		assert.Equal(t, "FAILED1", rows[1].TransactionHash)
		assert.Equal(t, ledger.RowType_Expense, rows[1].Type)
		assert.Equal(t, "Transaction Failed", rows[1].Description)
	})

	t.Run("Should format dates in ledger time", func(t *testing.T) {
		assert.Equal(t, "2022-01-15 10:30:00", rows[0].Date)
	})
}

func Test_Run_MissingInput(t *testing.T) {
	cfg := setup(t)
	cfg.DataDir = t.TempDir()

	p := NewPipeline(cfg, metrics.NewMetrics(), zap.NewNop())
	_, err := p.Run(context.Background())
	assert.NotNil(t, err)
}

func Test_Run_UnknownTransport(t *testing.T) {
	cfg := setup(t)
	cfg.DenomsConfig.LookupTransport = "carrier-pigeon"

	p := NewPipeline(cfg, metrics.NewMetrics(), zap.NewNop())
	_, err := p.Run(context.Background())
	assert.NotNil(t, err)
}
