package yum

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Progress reports backward-induction progress to an [io.Writer], one
// line per update, at most once per second. The zero value discards all
// updates.
type Progress struct {
	w       io.Writer
	printer *message.Printer
	start   time.Time
	last    time.Time
	total   uint64
	done    uint64
}

// NewProgress returns a [Progress] reporter writing to w, expecting total
// total calculations across the whole solve.
func NewProgress(w io.Writer, total uint64) *Progress {
	now := time.Now()
	return &Progress{
		w:       w,
		printer: message.NewPrinter(language.English),
		start:   now,
		last:    now,
		total:   total,
	}
}

// Round announces the start of a round.
func (p *Progress) Round(round int) {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprintf(p.w, "round %d/12\n", round)
}

// Advance records n additional completed calculations and, at most once
// per second, writes a progress line.
func (p *Progress) Advance(n uint64) {
	if p == nil || p.w == nil {
		return
	}
	p.done += n
	if time.Since(p.last) < time.Second {
		return
	}
	p.last = time.Now()
	p.render()
}

// Done writes a final summary line.
func (p *Progress) Done() {
	if p == nil || p.w == nil {
		return
	}
	p.render()
	elapsed := time.Since(p.start)
	p.printer.Fprintf(p.w, "completed in %s (%d calculations)\n", formatDuration(elapsed), p.done)
}

func (p *Progress) render() {
	elapsed := time.Since(p.start)
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(p.done) / s
	}
	var eta time.Duration
	if rate > 0 && p.done < p.total {
		eta = time.Duration(float64(p.total-p.done)/rate) * time.Second
		if eta > 24*time.Hour {
			eta = 24 * time.Hour
		}
	}
	p.printer.Fprintf(p.w, "%5.1f%% elapsed %s eta %s %d calc/s\n",
		pct, formatDuration(elapsed), formatDuration(eta), uint64(rate))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// CacheStats summarizes intra-round memoization cache performance for one
// round.
type CacheStats struct {
	Round  int
	Hits   uint64
	Misses uint64
}

// HitRate returns the fraction of lookups that were cache hits, or 0 if
// there were no lookups.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Report writes a one-line cache statistics summary to w using
// thousands-grouped counts.
func (s CacheStats) Report(w io.Writer) {
	message.NewPrinter(language.English).Fprintf(w,
		"round %d cache: %d hits, %d misses (%.1f%% hit rate)\n",
		s.Round, s.Hits, s.Misses, s.HitRate()*100)
}
