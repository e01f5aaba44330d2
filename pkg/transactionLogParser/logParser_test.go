package transactionLogParser

import (
	"testing"

	"github.com/chainledger/chainledger/pkg/transaction"
	"github.com/stretchr/testify/assert"
)

func attrs(pairs ...string) []transaction.Attribute {
	out := make([]transaction.Attribute, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, transaction.Attribute{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func Test_GroupAttributes(t *testing.T) {
	t.Run("Should keep an unrepeated list as a single group", func(t *testing.T) {
		groups := GroupAttributes(attrs("recipient", "a", "sender", "b", "amount", "1"))
		assert.Equal(t, 1, len(groups))
		assert.Equal(t, 3, len(groups[0]))
	})
	t.Run("Should split repeated key cycles into one group per cycle", func(t *testing.T) {
		groups := GroupAttributes(attrs(
			"recipient", "a", "sender", "b", "amount", "1",
			"recipient", "c", "sender", "d", "amount", "2",
			"recipient", "e", "sender", "f", "amount", "3",
		))
		assert.Equal(t, 3, len(groups))
		for _, g := range groups {
			assert.Equal(t, 3, len(g))
			assert.Equal(t, "recipient", g[0].Key)
		}
		assert.Equal(t, "e", groups[2][0].Value)
	})
	t.Run("Should end a group at the next occurrence of its starting key even with uneven cycles", func(t *testing.T) {
		groups := GroupAttributes(attrs(
			"recipient", "a", "amount", "1",
			"recipient", "b", "sender", "x", "amount", "2",
		))
		assert.Equal(t, 2, len(groups))
		assert.Equal(t, 2, len(groups[0]))
		assert.Equal(t, 3, len(groups[1]))
	})
	t.Run("Should return no groups for an empty list", func(t *testing.T) {
		assert.Equal(t, 0, len(GroupAttributes(nil)))
	})
}

func Test_ValueOfKey(t *testing.T) {
	set := attrs("sender", "a", "amount", "1", "sender", "b")

	t.Run("Should return the first value for a repeated key", func(t *testing.T) {
		v, ok := ValueOfKey(set, "sender")
		assert.True(t, ok)
		assert.Equal(t, "a", v)
	})
	t.Run("Should report a missing key", func(t *testing.T) {
		_, ok := ValueOfKey(set, "recipient")
		assert.False(t, ok)
	})
}

func Test_ParseCoins(t *testing.T) {
	t.Run("Should parse a single native coin", func(t *testing.T) {
		coins := ParseCoins("500000uatom")
		assert.Equal(t, 1, len(coins))
		assert.Equal(t, "500000", coins[0].Amount)
		assert.Equal(t, "uatom", coins[0].Denom)
	})
	t.Run("Should parse a comma joined multi asset amount", func(t *testing.T) {
		coins := ParseCoins("500000uatom,250ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2")
		assert.Equal(t, 2, len(coins))
		assert.Equal(t, "250", coins[1].Amount)
		assert.Equal(t, "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", coins[1].Denom)
	})
	t.Run("Should keep slash qualified denoms intact", func(t *testing.T) {
		coins := ParseCoins("123gamm/pool/1")
		assert.Equal(t, "gamm/pool/1", coins[0].Denom)
	})
	t.Run("Should degrade a missing amount to zero", func(t *testing.T) {
		coins := ParseCoins("uatom")
		assert.Equal(t, "0", coins[0].Amount)
		assert.Equal(t, "uatom", coins[0].Denom)
	})
	t.Run("Should degrade a missing denom to Unknown", func(t *testing.T) {
		coins := ParseCoins("12345")
		assert.Equal(t, "12345", coins[0].Amount)
		assert.Equal(t, UnknownDenom, coins[0].Denom)
	})
}

func Test_ActionsInLogs(t *testing.T) {
	logs := []transaction.Log{
		{Events: []transaction.Event{
			{Type: "message", Attributes: attrs("action", "/cosmos.bank.v1beta1.MsgSend")},
			{Type: "transfer", Attributes: attrs("amount", "1uatom")},
			{Type: "message", Attributes: attrs("action", "/cosmos.bank.v1beta1.MsgSend")},
		}},
		{Events: []transaction.Event{
			{Type: "message", Attributes: attrs("action", "/cosmos.gov.v1beta1.MsgVote")},
			{Type: "message", Attributes: attrs("module", "governance")},
		}},
	}

	t.Run("Should deduplicate actions preserving first appearance order", func(t *testing.T) {
		actions := ActionsInLogs(logs)
		assert.Equal(t, []string{"/cosmos.bank.v1beta1.MsgSend", "/cosmos.gov.v1beta1.MsgVote"}, actions)
	})
	t.Run("Should ignore message events without an action attribute", func(t *testing.T) {
		actions := ActionsInLogs([]transaction.Log{
			{Events: []transaction.Event{{Type: "message", Attributes: attrs("module", "bank")}}},
		})
		assert.Equal(t, 0, len(actions))
	})
}
