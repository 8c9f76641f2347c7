package replacement

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"taxtool/internal/beverage"
	"taxtool/internal/currency"
	"taxtool/internal/invoice"
	"taxtool/internal/logger"
)

// ReplacementsPerRun is how many invoice files one run samples. It equals
// the daily quota: a run is the whole day's allowance.
const ReplacementsPerRun = DailyLimit

// Replacement is one audit entry for a successfully replaced file.
type Replacement struct {
	OldName       string                `json:"old_name"`
	InvoiceID     string                `json:"invoice_id"`
	PaymentMethod invoice.PaymentMethod `json:"payment_method"`
	Total         int64                 `json:"total"`
	LastItemPrice int64                 `json:"last_item_price"`
}

// Report is the outcome of a successful replacement run.
type Report struct {
	Replaced []Replacement `json:"replaced"`
	LogLines []string      `json:"log_lines"`
	LogFile  string        `json:"log_file"`
}

// Orchestrator replaces a random sample of invoice files with synthesized
// beverage invoices at the same totals, once per day.
type Orchestrator struct {
	store  Store
	quota  *QuotaTracker
	logDir string
	rng    *rand.Rand
	now    func() time.Time
	log    zerolog.Logger
}

// NewOrchestrator wires a replacement orchestrator. The random source is
// injected so file sampling and item synthesis are deterministic under test.
func NewOrchestrator(store Store, quota *QuotaTracker, logDir string, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		store:  store,
		quota:  quota,
		logDir: logDir,
		rng:    rng,
		now:    time.Now,
		log:    logger.WithComponent("replacement"),
	}
}

// Run performs one replacement pass.
//
// It refuses outright when the daily quota is consumed or fewer than
// ReplacementsPerRun candidates exist. Sampled files whose names do not
// parse are skipped and logged, so a run may legitimately replace fewer
// files than it sampled. Completed replacements are not rolled back when a
// later write fails.
func (o *Orchestrator) Run() (*Report, error) {
	today := o.now().Format("2006-01-02")

	if !o.quota.Allowed(today) {
		o.log.Warn().Str("date", today).Msg("Replacement refused, quota consumed")
		return nil, fmt.Errorf("%w: all %d replacements for %s done", ErrQuotaExceeded, DailyLimit, today)
	}

	names, err := o.store.ListCandidates()
	if err != nil {
		return nil, err
	}
	if len(names) < ReplacementsPerRun {
		return nil, fmt.Errorf("%w: have %d eligible files, need at least %d",
			ErrNotEnoughCandidates, len(names), ReplacementsPerRun)
	}

	sampled := o.sample(names)
	dateStr := o.now().Format(beverage.DateLayout)

	logLines := []string{
		fmt.Sprintf("BEVERAGE INVOICE REPLACEMENT LOG - %s", dateStr),
		"Post-tax (10%) beverage totals equal the original (8%) totals exactly; only the last line item is adjusted.",
		"",
	}
	var replaced []Replacement

	for i, name := range sampled {
		id, method, total, perr := invoice.ParseFilename(name)
		if perr != nil {
			o.log.Warn().Str("file", name).Err(perr).Msg("Skipping unparseable invoice name")
			logLines = append(logLines, fmt.Sprintf("  %d. Skipped (unparseable name): %s", i+1, name))
			continue
		}

		inv := beverage.BuildInvoice(o.rng, id, method, total, dateStr)
		if _, err := o.store.Replace(name, total, inv); err != nil {
			return nil, err
		}

		last := inv.Items[len(inv.Items)-1]
		logLines = append(logLines,
			fmt.Sprintf("  %d. Replaced: %s", i+1, name),
			fmt.Sprintf("     -> invoice %s, %s, total %sđ, last item %sđ",
				id, strings.ToUpper(string(method)),
				currency.FormatAmount(total), currency.FormatAmount(last.Price)),
		)
		replaced = append(replaced, Replacement{
			OldName:       name,
			InvoiceID:     id,
			PaymentMethod: method,
			Total:         total,
			LastItemPrice: last.Price,
		})

		o.log.Info().
			Str("file", name).
			Str("invoice_id", id).
			Str("payment_method", string(method)).
			Int64("total", total).
			Int64("last_item_price", last.Price).
			Msg("Invoice replaced")
	}

	logFile := fmt.Sprintf("beverage_replacement_log_%s.txt", today)
	if err := os.WriteFile(filepath.Join(o.logDir, logFile), []byte(strings.Join(logLines, "\n")), 0o644); err != nil {
		return nil, &RunError{Op: "WriteLog", Err: err}
	}

	// The run consumes the whole day's quota even when some samples were
	// skipped.
	if err := o.quota.Consume(today); err != nil {
		return nil, err
	}

	o.log.Info().
		Int("replaced", len(replaced)).
		Str("log_file", logFile).
		Msg("Replacement run completed")

	return &Report{
		Replaced: replaced,
		LogLines: logLines,
		LogFile:  logFile,
	}, nil
}

// sample picks ReplacementsPerRun distinct names uniformly.
func (o *Orchestrator) sample(names []string) []string {
	picked := make([]string, 0, ReplacementsPerRun)
	for _, idx := range o.rng.Perm(len(names))[:ReplacementsPerRun] {
		picked = append(picked, names[idx])
	}
	return picked
}
