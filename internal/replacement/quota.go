package replacement

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"taxtool/internal/logger"
)

// DailyLimit is how many invoices may be replaced per calendar date.
// One successful run consumes the entire day's quota.
const DailyLimit = 5

// QuotaTracker persists the per-day replacement quota across restarts as a
// single small JSON record.
type QuotaTracker struct {
	path string
	log  zerolog.Logger
}

type quotaState struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// NewQuotaTracker creates a tracker backed by the state file at path.
func NewQuotaTracker(path string) *QuotaTracker {
	return &QuotaTracker{
		path: path,
		log:  logger.WithComponent("quota"),
	}
}

// Allowed reports whether a replacement run may proceed on the given date
// (formatted YYYY-MM-DD). A stale or missing state record allows the run.
func (q *QuotaTracker) Allowed(today string) bool {
	st := q.read()
	return st.Date != today || st.Count < DailyLimit
}

// Consume records that today's quota is fully used. The count jumps
// straight to the limit: pressing the button again the same day does
// nothing, regardless of how many files the run actually replaced.
func (q *QuotaTracker) Consume(today string) error {
	data, err := json.Marshal(quotaState{Date: today, Count: DailyLimit})
	if err != nil {
		return &RunError{Op: "Consume", Err: err}
	}
	if err := os.WriteFile(q.path, data, 0o644); err != nil {
		return &RunError{Op: "Consume", Err: err}
	}
	q.log.Debug().Str("date", today).Int("count", DailyLimit).Msg("Quota state written")
	return nil
}

// read loads the persisted state. Missing or corrupt files fail open to an
// empty record so a broken state file never blocks the operator.
func (q *QuotaTracker) read() quotaState {
	data, err := os.ReadFile(q.path)
	if err != nil {
		return quotaState{}
	}
	var st quotaState
	if err := json.Unmarshal(data, &st); err != nil {
		q.log.Warn().Err(err).Str("path", q.path).Msg("Quota state file corrupt, treating as empty")
		return quotaState{}
	}
	return st
}
