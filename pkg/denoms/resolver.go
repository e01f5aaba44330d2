// Package denoms maps raw on-chain asset identifiers (native symbols or
// content-addressed bridge hashes) to human-readable symbols and decimal
// precision.
package denoms

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Denomination is a resolved asset identity.
type Denomination struct {
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}

// Unknown is the sentinel returned (and cached) when resolution fails, so
// the same unresolvable hash fails fast for the rest of the run.
var Unknown = Denomination{Symbol: "Unknown", Decimals: 0}

// Lookup resolves a bridge hash to its canonical base denom through some
// external dependency (node client binary or registry HTTP endpoint). The
// resolver only depends on this contract, never on the transport.
type Lookup interface {
	BaseDenom(ctx context.Context, hash string) (string, error)
}

// nativeDenoms are the statically known per-chain base assets. Anything
// else is either a bridge hash or stays unresolved.
var nativeDenoms = map[string]Denomination{
	"uatom":   {Symbol: "ATOM", Decimals: 6},
	"uosmo":   {Symbol: "OSMO", Decimals: 6},
	"uion":    {Symbol: "ION", Decimals: 6},
	"ujuno":   {Symbol: "JUNO", Decimals: 6},
	"uakt":    {Symbol: "AKT", Decimals: 6},
	"uscrt":   {Symbol: "SCRT", Decimals: 6},
	"uluna":   {Symbol: "LUNA", Decimals: 6},
	"ukuji":   {Symbol: "KUJI", Decimals: 6},
	"ustars":  {Symbol: "STARS", Decimals: 6},
	"uxprt":   {Symbol: "XPRT", Decimals: 6},
	"uregen":  {Symbol: "REGEN", Decimals: 6},
	"ucre":    {Symbol: "CRE", Decimals: 6},
	"inj":     {Symbol: "INJ", Decimals: 18},
	"aevmos":  {Symbol: "EVMOS", Decimals: 18},
	"acanto":  {Symbol: "CANTO", Decimals: 18},
	"swth":    {Symbol: "SWTH", Decimals: 8},
	"basecro": {Symbol: "CRO", Decimals: 8},
}

// Resolver resolves denominations with the cache store as the primary
// fast path and a single in-flight external lookup as the slow path.
type Resolver struct {
	store              *Store
	lookup             Lookup
	unresolvedDecimals int32
	logger             *zap.Logger

	// Serializes the miss path: one external lookup at a time, and no
	// duplicate lookups for the same hash.
	mu sync.Mutex
}

func NewResolver(store *Store, lookup Lookup, unresolvedDecimals int32, l *zap.Logger) *Resolver {
	if unresolvedDecimals == 0 {
		unresolvedDecimals = 6
	}
	return &Resolver{
		store:              store,
		lookup:             lookup,
		unresolvedDecimals: unresolvedDecimals,
		logger:             l,
	}
}

// Resolve maps a denom or bridge hash to its denomination. It never fails
// to the caller: resolution errors degrade to the Unknown sentinel, which
// is persisted so subsequent lookups of the same hash are cache hits.
func (r *Resolver) Resolve(ctx context.Context, denomOrHash string) Denomination {
	if denomOrHash == "" {
		return Unknown
	}
	if d, ok := nativeDenoms[denomOrHash]; ok {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.store.Get(denomOrHash); ok {
		return d
	}

	d := r.resolveExternal(ctx, denomOrHash)
	if err := r.store.Put(denomOrHash, d); err != nil {
		r.logger.Sugar().Errorw("Failed to persist denom resolution",
			zap.String("denom", denomOrHash),
			zap.Error(err),
		)
	}
	return d
}

func (r *Resolver) resolveExternal(ctx context.Context, denomOrHash string) Denomination {
	if r.lookup == nil {
		return Unknown
	}

	hash := strings.TrimPrefix(denomOrHash, "ibc/")
	base, err := r.lookup.BaseDenom(ctx, hash)
	if err != nil || base == "" {
		r.logger.Sugar().Warnw("Denom resolution failed, caching sentinel",
			zap.String("denom", denomOrHash),
			zap.Error(err),
		)
		return Unknown
	}

	if d, ok := nativeDenoms[base]; ok {
		return d
	}
	// Micro-denom convention: uatom -> ATOM.
	symbol := base
	if len(symbol) > 1 && strings.HasPrefix(symbol, "u") {
		symbol = symbol[1:]
	}
	return Denomination{
		Symbol:   strings.ToUpper(symbol),
		Decimals: r.unresolvedDecimals,
	}
}
