package timeouts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func Test_Store(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeouts.txt")
	store := NewStore(path)

	t.Run("Should start empty without a file", func(t *testing.T) {
		keys, err := store.Keys()
		assert.Nil(t, err)
		assert.Equal(t, 0, len(keys))
	})

	t.Run("Should record keys in order", func(t *testing.T) {
		assert.Nil(t, store.Record("timeout_height: 1-100"))
		assert.Nil(t, store.Record("timeout_height: 1-200"))

		keys, err := store.Keys()
		assert.Nil(t, err)
		assert.Equal(t, []string{"timeout_height: 1-100", "timeout_height: 1-200"}, keys)
	})

	t.Run("Should not duplicate an already recorded key", func(t *testing.T) {
		assert.Nil(t, store.Record("timeout_height: 1-100"))

		keys, err := store.Keys()
		assert.Nil(t, err)
		assert.Equal(t, 2, len(keys))
	})
}

func Test_Reconcile(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "ledger.csv")
	store := NewStore(filepath.Join(dir, "timeouts.txt"))

	rows := []ledger.Row{
		{Date: "2022-01-01 00:00:00", Type: ledger.RowType_Transfer, SentAsset: "ATOM", SentAmount: "1", Meta: "timeout_height: 1-100"},
		{Date: "2022-01-01 00:00:00", Type: ledger.RowType_Expense, FeeAsset: "ATOM", FeeAmount: "0.0025"},
		{Date: "2022-01-02 00:00:00", Type: ledger.RowType_Transfer, SentAsset: "ATOM", SentAmount: "2", Meta: "timeout_height: 1-999"},
	}
	assert.Nil(t, ledger.WriteRows(ledgerPath, rows))
	assert.Nil(t, store.Record("timeout_height: 1-100"))

	purged, err := Reconcile(ledgerPath, store, zap.NewNop())
	assert.Nil(t, err)
	assert.Equal(t, 1, purged)

	t.Run("Should purge rows whose key was recorded and blank the rest", func(t *testing.T) {
		kept, err := ledger.ReadRows(ledgerPath)
		assert.Nil(t, err)
		assert.Equal(t, 2, len(kept))
		for _, row := range kept {
			assert.Equal(t, "", row.Meta)
		}
		assert.Equal(t, "2", kept[1].SentAmount)
	})

	t.Run("Should remove the side file", func(t *testing.T) {
		_, err := os.Stat(filepath.Join(dir, "timeouts.txt"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Should be a no-op with nothing recorded", func(t *testing.T) {
		purged, err := Reconcile(ledgerPath, store, zap.NewNop())
		assert.Nil(t, err)
		assert.Equal(t, 0, purged)
	})
}
