package convert

import (
	"fmt"
	"log/slog"
	"strings"
)

// Report collects the diagnostics of one export pass. Entries are
// appended in the order problems are found and printed once when the
// pass ends. An entry may span several lines.
type Report struct {
	entries []string
	log     *slog.Logger
}

// NewReport returns an empty report that also logs every entry at warn
// level to log. A nil log disables that.
func NewReport(log *slog.Logger) *Report {
	return &Report{log: log}
}

// Add appends one entry.
func (r *Report) Add(format string, args ...any) {
	entry := fmt.Sprintf(format, args...)
	r.entries = append(r.entries, entry)
	if r.log != nil {
		r.log.Warn("export report", "entry", entry)
	}
}

// Lines returns the entries in the order they were added.
func (r *Report) Lines() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.entries)
}

// String joins the entries with newlines.
func (r *Report) String() string {
	return strings.Join(r.entries, "\n")
}
