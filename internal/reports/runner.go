package reports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"pricingcli/internal/dataset"
	"pricingcli/internal/pricing"
)

// Runner executes the report sections in a fixed order against one loaded
// store. A section error is logged and printed, and stops the remaining
// sections; everything already printed stands. Each run is an independent
// batch pass, nothing is shared between runs.
type Runner struct {
	store  *dataset.Store
	engine *pricing.Engine
	params pricing.Params
	out    io.Writer
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner creates a report runner writing to out
func NewRunner(store *dataset.Store, engine *pricing.Engine, params pricing.Params, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		store:  store,
		engine: engine,
		params: params,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// section pairs a report section name with its implementation
type section struct {
	name string
	run  func(ctx context.Context, latest time.Time) error
}

// Run executes all report sections. The global latest demand date is
// computed once up front and passed into every section that needs it, so
// "latest" means the same day everywhere.
func (r *Runner) Run(ctx context.Context) error {
	r.banner("DYNAMIC PRICING DATABASE ANALYSIS")
	fmt.Fprintf(r.out, "Analysis Date: %s\n", r.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(r.out, strings.Repeat("=", bannerWidth))

	r.printLoadSummary()

	demand, err := r.store.DemandMetrics()
	if err != nil {
		return r.fail(ctx, "demand date resolution", err)
	}
	latest, ok := pricing.LatestDemandDate(demand)
	if !ok {
		return r.fail(ctx, "demand date resolution",
			fmt.Errorf("demand metrics table is empty"))
	}

	sections := []section{
		{"pricing overview", r.pricingOverview},
		{"competitor comparison", r.competitorComparison},
		{"high demand products", r.highDemandProducts},
		{"revenue analysis", r.revenueAnalysis},
		{"inventory alerts", r.inventoryAlerts},
		{"pricing recommendations", r.pricingRecommendations},
	}

	for _, s := range sections {
		if err := s.run(ctx, latest); err != nil {
			return r.fail(ctx, s.name, err)
		}
	}

	r.banner("ANALYSIS COMPLETE")
	return nil
}

// fail reports a section failure on both the console and the log
func (r *Runner) fail(ctx context.Context, name string, err error) error {
	r.logger.ErrorContext(ctx, "report section failed",
		slog.String("section", name),
		slog.String("error", err.Error()))
	fmt.Fprintf(r.out, "\nError during analysis (%s): %v\n", name, err)
	return fmt.Errorf("section %s: %w", name, err)
}

// printLoadSummary lists which tables made it into the store
func (r *Runner) printLoadSummary() {
	fmt.Fprintln(r.out, "\nLoaded tables:")
	for _, table := range r.store.LoadedTables() {
		fmt.Fprintf(r.out, "  %-18s %d records\n", table, r.store.RecordCount(table))
	}
}

const bannerWidth = 80

// banner prints a section heading between separator lines
func (r *Runner) banner(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, strings.Repeat("=", bannerWidth))
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out, strings.Repeat("=", bannerWidth))
}

// fmtFloat renders a float with two decimals, or a dash when the value is
// absent (unmatched left join)
func fmtFloat(v float64, present bool) string {
	if !present {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
