package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const taggedEnvelope = `{
	"@type": "/cosmos.tx.v1beta1.Tx",
	"/cosmos-tx-v1beta1-Tx": {
		"body": {
			"messages": [
				{"@type": "/cosmos.bank.v1beta1.MsgSend", "amount": [{"denom": "uatom", "amount": "100"}]},
				{"@type": "/cosmos.bank.v1beta1.MsgSend"},
				{"@type": "/cosmos.gov.v1beta1.MsgVote"}
			]
		},
		"auth_info": {
			"fee": {"amount": [{"denom": "uatom", "amount": "2500"}], "gas_limit": "200000"}
		}
	}
}`

func Test_EnvelopeUnmarshal(t *testing.T) {
	t.Run("Should untag a type tagged envelope", func(t *testing.T) {
		var e Envelope
		err := json.Unmarshal([]byte(taggedEnvelope), &e)
		assert.Nil(t, err)
		assert.Equal(t, "/cosmos.tx.v1beta1.Tx", e.TypeURL)
		assert.Equal(t, 3, len(e.Body.Messages))
		assert.Equal(t, "uatom", e.AuthInfo.Fee.Amount[0].Denom)
	})
	t.Run("Should accept an inline body without the payload indirection", func(t *testing.T) {
		inline := `{
			"@type": "/cosmos.tx.v1beta1.Tx",
			"body": {"messages": [{"@type": "/cosmos.bank.v1beta1.MsgSend"}]},
			"auth_info": {"fee": {"amount": [{"denom": "uosmo", "amount": "1"}]}}
		}`
		var e Envelope
		err := json.Unmarshal([]byte(inline), &e)
		assert.Nil(t, err)
		assert.Equal(t, 1, len(e.Body.Messages))
		assert.Equal(t, "uosmo", e.AuthInfo.Fee.Amount[0].Denom)
	})
	t.Run("Should reject an envelope without a type tag", func(t *testing.T) {
		var e Envelope
		err := json.Unmarshal([]byte(`{"body": {}}`), &e)
		assert.NotNil(t, err)
	})
}

func Test_Transaction(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{
		"txhash": "ABC123",
		"id": "42",
		"timestamp": "2022-01-15T10:30:00Z",
		"tx": `+taggedEnvelope+`,
		"logs": [{"msg_index": 0, "events": []}]
	}`), &tx)
	assert.Nil(t, err)

	t.Run("Should decode the identity fields", func(t *testing.T) {
		assert.Equal(t, "ABC123", tx.Hash)
		assert.Equal(t, "42", tx.ID)
	})
	t.Run("Should not be failed when logs are present", func(t *testing.T) {
		assert.False(t, tx.Failed())
	})
	t.Run("Should be failed when logs are empty", func(t *testing.T) {
		failed := Transaction{Hash: "DEF"}
		assert.True(t, failed.Failed())
	})
	t.Run("Should return the first fee coin", func(t *testing.T) {
		coin, err := tx.FeeCoin()
		assert.Nil(t, err)
		assert.Equal(t, "uatom", coin.Denom)
		assert.Equal(t, "2500", coin.Amount)
	})
	t.Run("Should error when the fee has no amounts", func(t *testing.T) {
		empty := Transaction{Hash: "DEF"}
		_, err := empty.FeeCoin()
		assert.NotNil(t, err)
	})
	t.Run("Should list distinct message type urls in order", func(t *testing.T) {
		urls := tx.MessageTypeURLs()
		assert.Equal(t, []string{"/cosmos.bank.v1beta1.MsgSend", "/cosmos.gov.v1beta1.MsgVote"}, urls)
	})
}
