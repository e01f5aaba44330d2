// Package fees computes the human-scaled transaction fee from the raw fee
// coin and its resolved denomination.
package fees

import (
	"context"

	"github.com/chainledger/chainledger/pkg/denoms"
	"github.com/chainledger/chainledger/pkg/ledger"
	"github.com/chainledger/chainledger/pkg/transaction"
	"github.com/pkg/errors"
)

// Fee is a scaled fee amount and the symbol it is denominated in.
type Fee struct {
	Amount string
	Asset  string
}

type Calculator struct {
	resolver *denoms.Resolver
}

func NewCalculator(resolver *denoms.Resolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Compute scales the primary fee coin by the resolved precision. A missing
// fee array is a hard failure for the transaction; there is no meaningful
// fallback amount.
func (c *Calculator) Compute(ctx context.Context, tx *transaction.Transaction) (Fee, error) {
	coin, err := tx.FeeCoin()
	if err != nil {
		return Fee{}, errors.Wrap(err, "failed to extract fee")
	}

	d := c.resolver.Resolve(ctx, coin.Denom)
	return Fee{
		Amount: ledger.ScaleAmount(coin.Amount, d.Decimals),
		Asset:  d.Symbol,
	}, nil
}
