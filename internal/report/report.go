package report

import (
	"strings"
	"time"

	"finance/internal/core"
)

// Params are the raw, optional inputs accepted from the presentation layer.
type Params struct {
	DateFrom  string
	DateTo    string
	Category  string
	YearMonth string
}

// Query returns the filter part of the parameters.
func (p Params) Query() Query {
	return Query{DateFrom: p.DateFrom, DateTo: p.DateTo, Category: p.Category}
}

// Normalize trims every field.
func (p Params) Normalize() Params {
	return Params{
		DateFrom:  strings.TrimSpace(p.DateFrom),
		DateTo:    strings.TrimSpace(p.DateTo),
		Category:  strings.TrimSpace(p.Category),
		YearMonth: strings.TrimSpace(p.YearMonth),
	}
}

// Report is everything the dashboard needs for one request.
type Report struct {
	Params  Params
	Visible []core.Transaction // filtered, most recent first
	Totals  Totals             // over Visible
	Monthly MonthlySeries      // whole resolved month, ignores the filters
}

// Build assembles a report. The monthly series is computed over all records
// so the chart always shows the full month regardless of range or category.
func Build(all []core.Transaction, p Params, now time.Time) Report {
	p = p.Normalize()
	visible := Filter(all, p.Query())
	return Report{
		Params:  p,
		Visible: visible,
		Totals:  Aggregate(visible),
		Monthly: BuildMonthlySeries(all, p.YearMonth, now),
	}
}

// Engine builds reports against a clock.
type Engine struct {
	Now func() time.Time
}

// NewEngine returns an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Build runs Build with the engine's clock.
func (e *Engine) Build(all []core.Transaction, p Params) Report {
	return Build(all, p, e.now())
}

// Month resolves yearMonth with the engine's clock.
func (e *Engine) Month(yearMonth string) (year, month int) {
	return ResolveMonth(yearMonth, e.now())
}
