// Command settler prints a group's balance report: outstanding balances,
// net positions, suggested settlements and settlement progress. It is a
// diagnostic tool over the same store and engine the API layer embeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmalik/settler/internal/calculator"
	"github.com/tmalik/settler/internal/config"
	"github.com/tmalik/settler/internal/metrics"
	"github.com/tmalik/settler/internal/service"
	"github.com/tmalik/settler/internal/storage/sqlite"
	"github.com/tmalik/settler/pkg/logging"
)

func main() {
	logging.Setup()

	groupID := flag.String("group", "", "group ID to report on (required)")
	memberID := flag.String("member", "", "optionally restrict to one member's view")
	dbPath := flag.String("db", "", "sqlite database path (default from SQLITE_DB_PATH)")
	flag.Parse()

	if *groupID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.SQLiteDBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("failed to open store", "database", cfg.SQLiteDBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := calculator.NewEngine(store, calculator.Config{
		Epsilon:   cfg.Epsilon,
		CacheTTL:  cfg.CacheTTL,
		CacheSize: cfg.CacheSize,
	}, metrics.New())
	balances := service.NewBalanceService(engine)

	ctx := context.Background()

	if *memberID != "" {
		summary, err := balances.MemberSummary(ctx, *groupID, *memberID)
		if err != nil {
			slog.Error("failed to compute member summary", "group_id", *groupID, "error", err)
			os.Exit(1)
		}
		printMemberSummary(summary)
		return
	}

	report, err := balances.Report(ctx, *groupID)
	if err != nil {
		slog.Error("failed to compute report", "group_id", *groupID, "error", err)
		os.Exit(1)
	}
	printReport(report)
}

func printReport(report *calculator.Report) {
	if report.Degraded {
		fmt.Println("WARNING: settlements could not be applied; balances are un-netted")
	}

	fmt.Printf("Group %s\n\n", report.GroupID)

	fmt.Println("Outstanding balances:")
	if len(report.Balances) == 0 {
		fmt.Println("  (none — all settled)")
	}
	for _, b := range report.Balances {
		fmt.Printf("  %s owes %s %.2f\n", b.DebtorID, b.CreditorID, b.Amount)
	}

	fmt.Println("\nNet positions:")
	for _, p := range report.NetPositions {
		fmt.Printf("  %s: %+.2f\n", p.MemberID, p.Amount)
	}

	fmt.Println("\nSuggested settlements:")
	if len(report.Suggestions) == 0 {
		fmt.Println("  (none)")
	}
	for _, sg := range report.Suggestions {
		fmt.Printf("  %s pays %s %.2f\n", sg.FromID, sg.ToID, sg.Amount)
	}

	pr := report.Progress
	fmt.Printf("\nProgress: %.2f spent, %.2f settled, %.2f outstanding (%.1f%% settled)\n",
		pr.TotalExpense, pr.Settled, pr.Outstanding, pr.Percent)

	if !report.Consistency.Consistent {
		fmt.Printf("NOTE: splits drift from expense totals by %.2f\n",
			report.Consistency.Discrepancy)
	}
}

func printMemberSummary(summary service.MemberSummary) {
	fmt.Printf("Member %s (net %+.2f)\n\n", summary.MemberID, summary.Net)

	fmt.Println("Owes:")
	if len(summary.Owes) == 0 {
		fmt.Println("  (nothing)")
	}
	for _, b := range summary.Owes {
		fmt.Printf("  %.2f to %s\n", b.Amount, b.CreditorID)
	}

	fmt.Println("\nOwed by:")
	if len(summary.OwedBy) == 0 {
		fmt.Println("  (nobody)")
	}
	for _, b := range summary.OwedBy {
		fmt.Printf("  %.2f from %s\n", b.Amount, b.DebtorID)
	}
}
