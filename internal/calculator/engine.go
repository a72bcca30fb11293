// Package calculator implements the balance netting and settlement
// optimization pipeline: expenses become pairwise debts, effective
// settlements are netted against them, the remaining graph collapses into
// signed per-member positions, and a greedy matcher reduces those to a
// minimal payment set.
//
// The pipeline stages are pure functions; Engine wires them to a ledger
// source, a per-group result cache, and metrics.
package calculator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmalik/settler/internal/cache"
	"github.com/tmalik/settler/internal/metrics"
	"github.com/tmalik/settler/internal/models"
	"github.com/tmalik/settler/internal/money"
)

// Defaults for Config fields left zero.
const (
	DefaultEpsilon   = 0.01
	DefaultCacheTTL  = 5 * time.Minute
	DefaultCacheSize = 256
)

// Ledger supplies the raw records the engine computes over. The storage
// layer satisfies it; tests use small fakes.
type Ledger interface {
	// ListExpenses returns all expenses (with splits) for a group.
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// ListSettlements returns all settlements for a group, any status.
	ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)
}

// Config carries the engine's tunables. Tolerances and cache parameters
// are per-engine so different configurations can run side by side.
type Config struct {
	// Epsilon is the tolerance below which an amount counts as zero.
	Epsilon float64

	// CacheTTL bounds how stale a cached report may be served.
	CacheTTL time.Duration

	// CacheSize is the maximum number of group reports kept in memory.
	CacheSize int
}

func (c Config) withDefaults() Config {
	if c.Epsilon <= 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	return c
}

// Report is the full computed state for one group. All amounts are
// rounded half-up to two decimals.
type Report struct {
	GroupID      string
	Balances     []models.Balance
	NetPositions []models.NetPosition
	Suggestions  []models.Suggestion
	Progress     models.Progress
	Consistency  models.ConsistencyReport

	// Degraded is true when the settlement overlay rejected its input
	// and Balances holds the un-netted pairwise debts instead.
	Degraded bool

	ComputedAt time.Time
}

// Engine runs the balance pipeline over a ledger with per-group caching.
type Engine struct {
	cfg     Config
	ledger  Ledger
	reports *cache.Cache[*Report]
	metrics *metrics.Metrics
}

// NewEngine creates an engine over the given ledger. Zero Config fields
// take defaults; metrics may be nil to disable instrumentation.
func NewEngine(ledger Ledger, cfg Config, m *metrics.Metrics) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:     cfg,
		ledger:  ledger,
		reports: cache.New[*Report](cfg.CacheSize, cfg.CacheTTL),
		metrics: m,
	}
}

// Report returns the group's computed report, served from cache when a
// fresh entry exists and recomputed from the ledger otherwise.
func (e *Engine) Report(ctx context.Context, groupID string) (*Report, error) {
	if report, ok := e.reports.Get(groupID); ok {
		e.count(func(m *metrics.Metrics) { m.CacheHits.Inc() })
		return report, nil
	}
	e.count(func(m *metrics.Metrics) { m.CacheMisses.Inc() })

	expenses, err := e.ledger.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for group %s: %w", groupID, err)
	}
	settlements, err := e.ledger.ListSettlements(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list settlements for group %s: %w", groupID, err)
	}

	report := e.Compute(groupID, expenses, settlements)
	e.reports.Set(groupID, report)
	return report, nil
}

// Compute runs the full pipeline on already-fetched records, bypassing
// ledger and cache. Never fails: when the overlay rejects its input the
// report degrades to the un-netted pairwise balances, flagged, logged and
// counted rather than silently swallowed.
func (e *Engine) Compute(groupID string, expenses []models.Expense, settlements []models.Settlement) *Report {
	e.count(func(m *metrics.Metrics) { m.Computations.Inc() })

	pairwise := PairwiseBalances(expenses)

	degraded := false
	outstanding, err := ApplySettlements(pairwise, settlements, e.cfg.Epsilon)
	if err != nil {
		slog.Warn("settlement overlay failed, serving un-netted balances",
			"group_id", groupID, "error", err)
		e.count(func(m *metrics.Metrics) { m.DegradedFallbacks.Inc() })
		outstanding = pairwise
		degraded = true
	}

	positions := NetPositions(outstanding)
	suggestions := MinimizeTransfers(positions, e.cfg.Epsilon)
	progress := SettlementProgress(expenses, settlements, outstanding, e.cfg.Epsilon)
	consistency := ValidateConsistency(expenses, e.cfg.Epsilon)

	return &Report{
		GroupID:      groupID,
		Balances:     roundBalances(outstanding),
		NetPositions: roundPositions(positions),
		Suggestions:  suggestions,
		Progress:     progress,
		Consistency:  consistency,
		Degraded:     degraded,
		ComputedAt:   time.Now(),
	}
}

// Invalidate drops the group's cached report. Called synchronously on
// every expense or settlement mutation; the next read recomputes.
func (e *Engine) Invalidate(groupID string) {
	e.reports.Delete(groupID)
	e.count(func(m *metrics.Metrics) { m.Invalidations.Inc() })
}

func (e *Engine) count(fn func(*metrics.Metrics)) {
	if e.metrics != nil {
		fn(e.metrics)
	}
}

func roundBalances(balances []models.Balance) []models.Balance {
	out := make([]models.Balance, len(balances))
	for i, b := range balances {
		b.Amount = money.Round(b.Amount)
		out[i] = b
	}
	return out
}

func roundPositions(positions []models.NetPosition) []models.NetPosition {
	out := make([]models.NetPosition, len(positions))
	for i, p := range positions {
		p.Amount = money.Round(p.Amount)
		out[i] = p
	}
	return out
}
