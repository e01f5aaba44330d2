// Package processors contains one handler per on-chain message family.
// Each handler turns a transaction's event logs into zero or more
// canonical ledger rows. Handlers degrade to "0"/"Unknown" placeholders on
// missing attributes; one malformed log must not abort the run.
package processors

import (
	"context"

	"github.com/chainledger/chainledger/internal/config"
	"github.com/chainledger/chainledger/pkg/denoms"
	"github.com/chainledger/chainledger/pkg/fees"
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/timeouts"
	"github.com/chainledger/chainledger/pkg/transaction"
	logparser "github.com/chainledger/chainledger/pkg/transactionLogParser"
	"go.uber.org/zap"
)

// Action type URLs as they appear in message events, plus the bare legacy
// names used before the dotted convention.
const (
	ActionMsgSend                   = "/cosmos.bank.v1beta1.MsgSend"
	ActionMsgMultiSend              = "/cosmos.bank.v1beta1.MsgMultiSend"
	ActionMsgDelegate               = "/cosmos.staking.v1beta1.MsgDelegate"
	ActionMsgBeginRedelegate        = "/cosmos.staking.v1beta1.MsgBeginRedelegate"
	ActionMsgWithdrawReward         = "/cosmos.distribution.v1beta1.MsgWithdrawDelegatorReward"
	ActionMsgVote                   = "/cosmos.gov.v1beta1.MsgVote"
	ActionMsgExec                   = "/cosmos.authz.v1beta1.MsgExec"
	ActionMsgTransfer               = "/ibc.applications.transfer.v1.MsgTransfer"
	ActionMsgRecvPacket             = "/ibc.core.channel.v1.MsgRecvPacket"
	ActionMsgTimeout                = "/ibc.core.channel.v1.MsgTimeout"
	ActionMsgAcknowledgement        = "/ibc.core.channel.v1.MsgAcknowledgement"
	ActionMsgUpdateClient           = "/ibc.core.client.v1.MsgUpdateClient"
	ActionMsgExecuteContract        = "/cosmwasm.wasm.v1.MsgExecuteContract"
	ActionMsgSwapWithinBatch        = "/tendermint.liquidity.v1beta1.MsgSwapWithinBatch"
	ActionMsgDepositWithinBatch     = "/tendermint.liquidity.v1beta1.MsgDepositWithinBatch"
	ActionMsgWithdrawWithinBatch    = "/tendermint.liquidity.v1beta1.MsgWithdrawWithinBatch"
	ActionMsgSwapExactAmountIn      = "/osmosis.gamm.v1beta1.MsgSwapExactAmountIn"
	ActionMsgJoinPool               = "/osmosis.gamm.v1beta1.MsgJoinPool"
	ActionMsgExitPool               = "/osmosis.gamm.v1beta1.MsgExitPool"
	ActionMsgJoinSwapExternAmountIn = "/osmosis.gamm.v1beta1.MsgJoinSwapExternAmountIn"
	ActionMsgLockTokens             = "/osmosis.lockup.MsgLockTokens"

	ActionLegacySend               = "send"
	ActionLegacyDelegate           = "delegate"
	ActionLegacyVote               = "vote"
	ActionLegacyWithdrawReward     = "withdraw_delegator_reward"
	ActionLegacyBeginRedelegate    = "begin_redelegate"
	ActionLegacySwapWithinBatch    = "swap_within_batch"
	ActionLegacyDepositWithinBatch = "deposit_within_batch"
)

// Context carries the per-run collaborators every processor needs. The
// classifier toggles SuppressDelegateRewards per transaction.
type Context struct {
	Address      string
	BaseSymbol   string
	BaseDecimals int32
	Resolver     *denoms.Resolver
	Fees         *fees.Calculator
	Timeouts     *timeouts.Store
	Logger       *zap.Logger

	SuppressDelegateRewards bool
}

func NewContext(cfg *config.Config, resolver *denoms.Resolver, feeCalc *fees.Calculator, store *timeouts.Store, l *zap.Logger) *Context {
	params := cfg.Chain.Params()
	return &Context{
		Address:      cfg.WalletAddress,
		BaseSymbol:   params.BaseSymbol,
		BaseDecimals: params.BaseDecimals,
		Resolver:     resolver,
		Fees:         feeCalc,
		Timeouts:     store,
		Logger:       l,
	}
}

// Func is the processor signature: wallet context plus one transaction's
// logs in, partial ledger rows out. Date, hash and id are stamped by the
// classifier afterwards.
type Func func(ctx context.Context, pctx *Context, tx *transaction.Transaction, logs []transaction.Log) ([]ledger.Row, error)

// Registry maps every known action to its processor.
func Registry() map[string]Func {
	return map[string]Func{
		ActionMsgSend:                   MsgSend,
		ActionMsgMultiSend:              MsgMultiSend,
		ActionMsgDelegate:               MsgDelegate,
		ActionMsgBeginRedelegate:        MsgBeginRedelegate,
		ActionMsgWithdrawReward:         MsgWithdrawDelegatorReward,
		ActionMsgVote:                   MsgVote,
		ActionMsgExec:                   MsgExec,
		ActionMsgTransfer:               IbcMsgTransfer,
		ActionMsgRecvPacket:             MsgRecvPacket,
		ActionMsgTimeout:                MsgTimeout,
		ActionMsgAcknowledgement:        MsgAcknowledgement,
		ActionMsgExecuteContract:        WasmMsgExecuteContract,
		ActionMsgSwapWithinBatch:        MsgSwapWithinBatch,
		ActionMsgDepositWithinBatch:     MsgDepositWithinBatch,
		ActionMsgWithdrawWithinBatch:    MsgWithdrawWithinBatch,
		ActionMsgSwapExactAmountIn:      OsmosisMsgSwapExactAmountIn,
		ActionMsgJoinPool:               OsmosisMsgJoinPool,
		ActionMsgExitPool:               OsmosisMsgExitPool,
		ActionMsgJoinSwapExternAmountIn: OsmosisMsgJoinSwapExternAmountIn,
		ActionMsgLockTokens:             OsmosisLockTokens,

		ActionLegacySend:               LegacySend,
		ActionLegacyDelegate:           LegacyDelegate,
		ActionLegacyVote:               LegacyVote,
		ActionLegacyWithdrawReward:     LegacyWithdrawDelegatorReward,
		ActionLegacyBeginRedelegate:    LegacyBeginRedelegate,
		ActionLegacySwapWithinBatch:    LegacySwapWithinBatch,
		ActionLegacyDepositWithinBatch: MsgDepositWithinBatch,
	}
}

// resolveCoin scales a raw coin by its resolved precision and returns the
// human amount with the asset symbol.
func (pctx *Context) resolveCoin(ctx context.Context, coin logparser.Coin) (string, string) {
	d := pctx.Resolver.Resolve(ctx, coin.Denom)
	return ledger.ScaleAmount(coin.Amount, d.Decimals), d.Symbol
}

// coinsOf parses the amount attribute of an attribute set, degrading to a
// single zero/Unknown coin when the attribute is absent.
func coinsOf(attributes []transaction.Attribute) []logparser.Coin {
	amount, ok := logparser.ValueOfKey(attributes, "amount")
	if !ok {
		return []logparser.Coin{{Amount: "0", Denom: logparser.UnknownDenom}}
	}
	return logparser.ParseCoins(amount)
}
