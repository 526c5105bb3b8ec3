// Package unit implements the formatting policy for progress values:
// how a step/max pair, a percentage, and a throughput rate are turned
// into the strings both renderers print. It never panics on unusual
// input (step > max, max == 0) — every code path here must be total.
package unit

import (
	"fmt"
	"math"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Unit formats the value of a single progress task. All methods must be
// total: they are called from the renderer's hot tick path and must
// never panic, regardless of step/max combination.
type Unit interface {
	// DisplayValue renders step (and max, if given) as a human string,
	// e.g. "12.3 MB" or "12.3 MB / 1.0 GB".
	DisplayValue(step uint64, max *uint64) string
	// DisplayPercentage renders step/max as a percentage string, e.g.
	// "42%". Called only when max is known.
	DisplayPercentage(step, max uint64) string
	// DisplayThroughput renders a rate (units per second) as a string,
	// or "" if this unit does not opt into throughput display.
	DisplayThroughput(rate float64) string
	// DisplayUnitOnly renders the unit label alone, for column headers.
	DisplayUnitOnly() string
}

// Percentage computes step/max as a percentage in [0,100], rounded
// half-to-even. max == 0 is treated as 0% (never divides by zero).
func Percentage(step, max uint64) float64 {
	if max == 0 {
		return 0
	}
	p := float64(step) / float64(max) * 100
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return math.RoundToEven(p*10) / 10
}

// formatPercentage is the common "NN%" rendering shared by every unit
// that displays integral percentages.
func formatPercentage(step, max uint64) string {
	return fmt.Sprintf("%.0f%%", Percentage(step, max))
}

// Bytes formats values as byte counts, e.g. "1.2 MB". Throughput is
// opt-in via the Throughput field so a caller can disable the "/s"
// column for units that never move (e.g. a fixed "total files" count).
type Bytes struct {
	Throughput bool
}

func (b Bytes) DisplayValue(step uint64, max *uint64) string {
	if max == nil {
		return humanize.Bytes(step)
	}
	return humanize.Bytes(step) + " / " + humanize.Bytes(*max)
}

func (b Bytes) DisplayPercentage(step, max uint64) string { return formatPercentage(step, max) }

func (b Bytes) DisplayThroughput(rate float64) string {
	if !b.Throughput || rate <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(rate)) + "/s"
}

func (b Bytes) DisplayUnitOnly() string { return "B" }

// Duration formats step as a count of seconds elapsed, e.g. "1m32s".
type Duration struct {
	Throughput bool
}

func (d Duration) DisplayValue(step uint64, max *uint64) string {
	cur := formatDuration(time.Duration(step) * time.Second)
	if max == nil {
		return cur
	}
	return cur + " / " + formatDuration(time.Duration(*max)*time.Second)
}

func (d Duration) DisplayPercentage(step, max uint64) string { return formatPercentage(step, max) }

func (d Duration) DisplayThroughput(rate float64) string {
	if !d.Throughput || rate <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1fx", rate)
}

func (d Duration) DisplayUnitOnly() string { return "s" }

// formatDuration renders a duration the way a human reads a stopwatch,
// dropping units that are zero at the front (e.g. "32s", "1m32s",
// "2h01m32s"). No ecosystem duration-humanizer exists across the
// example repos, so this is a small hand-rolled helper (see DESIGN.md).
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// Human formats step using a caller-supplied label and formatting
// function, for counts whose unit is domain-specific (e.g. "files",
// "commits", "objects"). Format defaults to humanize.Comma if nil.
type Human struct {
	Label      string
	Format     func(uint64) string
	Throughput bool
}

func (h Human) format(v uint64) string {
	if h.Format != nil {
		return h.Format(v)
	}
	return humanize.Comma(int64(v)) // #nosec G115 -- progress counts never approach int64 overflow
}

func (h Human) DisplayValue(step uint64, max *uint64) string {
	cur := h.format(step) + " " + h.Label
	if max == nil {
		return cur
	}
	return h.format(step) + " / " + h.format(*max) + " " + h.Label
}

func (h Human) DisplayPercentage(step, max uint64) string { return formatPercentage(step, max) }

func (h Human) DisplayThroughput(rate float64) string {
	if !h.Throughput || rate <= 0 {
		return ""
	}
	return h.format(uint64(rate)) + " " + h.Label + "/s"
}

func (h Human) DisplayUnitOnly() string { return h.Label }

// Dynamic formats a plain count with a label that may change over the
// lifetime of a task (e.g. switching from "objects" to "deltas" mid-scan).
// Unlike Human, Dynamic carries no fixed Format hook — it always uses
// humanize.Comma.
type Dynamic struct {
	Label string
}

func (d Dynamic) DisplayValue(step uint64, max *uint64) string {
	if max == nil {
		return humanize.Comma(int64(step)) + " " + d.Label // #nosec G115
	}
	return humanize.Comma(int64(step)) + " / " + humanize.Comma(int64(*max)) + " " + d.Label // #nosec G115
}

func (d Dynamic) DisplayPercentage(step, max uint64) string { return formatPercentage(step, max) }

func (d Dynamic) DisplayThroughput(float64) string { return "" }

func (d Dynamic) DisplayUnitOnly() string { return d.Label }

// StaticMode selects how a Static unit renders its value.
type StaticMode int

const (
	// ModeCount renders just the step, e.g. "3 errors" — no fraction.
	ModeCount StaticMode = iota
	// ModeRange renders step/max like Bytes does, e.g. "3 / 10 items".
	ModeRange
)

// Static is the fixed-label counterpart of Dynamic: a label that never
// changes, with a mode controlling whether the max is shown.
type Static struct {
	Label string
	Mode  StaticMode
}

func (s Static) DisplayValue(step uint64, max *uint64) string {
	if s.Mode == ModeCount || max == nil {
		return humanize.Comma(int64(step)) + " " + s.Label // #nosec G115
	}
	return humanize.Comma(int64(step)) + " / " + humanize.Comma(int64(*max)) + " " + s.Label // #nosec G115
}

func (s Static) DisplayPercentage(step, max uint64) string { return formatPercentage(step, max) }

func (s Static) DisplayThroughput(float64) string { return "" }

func (s Static) DisplayUnitOnly() string { return s.Label }
