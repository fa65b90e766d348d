package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"finance/internal/cache"
	"finance/internal/ports"
	"finance/internal/report"
)

// DefaultReportTimeout bounds the snapshot read behind one report.
const DefaultReportTimeout = 7 * time.Second

// ReportService loads a snapshot of all transactions and builds the report.
// Cached reports are shared between callers and must be treated as read-only.
type ReportService struct {
	source  ports.TransactionLister
	engine  *report.Engine
	cache   cache.Cache[report.Report]
	group   singleflight.Group
	gen     atomic.Uint64
	timeout time.Duration
}

// NewReportService accepts a nil cache to disable caching.
func NewReportService(source ports.TransactionLister, engine *report.Engine, c cache.Cache[report.Report]) *ReportService {
	if engine == nil {
		engine = report.NewEngine()
	}
	return &ReportService{
		source:  source,
		engine:  engine,
		cache:   c,
		timeout: DefaultReportTimeout,
	}
}

func (s *ReportService) Report(ctx context.Context, p report.Params) (report.Report, error) {
	p = p.Normalize()
	key := s.cacheKey(p)

	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Report cache hit", "key", key)
			return r, nil
		}
	}

	// The generation is part of the flight key so a request arriving after a
	// write never joins a build that read the old snapshot.
	gen := s.gen.Load()
	flight := s.group.DoChan(fmt.Sprintf("%d|%s", gen, key), func() (any, error) {
		// Shared by every caller, so no single caller may cancel it.
		r, err := s.build(context.WithoutCancel(ctx), p)
		if err != nil {
			return report.Report{}, err
		}
		// A write that landed mid-build would leave a stale entry behind.
		if s.cache != nil && s.gen.Load() == gen {
			s.cache.Set(key, r)
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return report.Report{}, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return report.Report{}, res.Err
		}
		if res.Shared {
			slog.DebugContext(ctx, "Report build shared with concurrent request", "key", key)
		}
		return res.Val.(report.Report), nil
	}
}

func (s *ReportService) build(ctx context.Context, p report.Params) (report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	all, err := s.source.ListTransactions(ctx, "", "")
	if err != nil {
		return report.Report{}, fmt.Errorf("load transactions: %w", err)
	}
	r := s.engine.Build(all, p)

	slog.InfoContext(ctx, "Report built",
		"records", len(all),
		"visible", len(r.Visible),
		"month", r.Monthly.DisplayMonth,
		"duration", time.Since(start))
	return r, nil
}

// Invalidate drops every cached report.
func (s *ReportService) Invalidate() {
	s.gen.Add(1)
	if s.cache != nil {
		s.cache.Purge()
	}
}

// cacheKey pins the resolved month so an absent month does not outlive a
// change of calendar month.
func (s *ReportService) cacheKey(p report.Params) string {
	year, month := s.engine.Month(p.YearMonth)
	return fmt.Sprintf("%q|%q|%q|%s", p.DateFrom, p.DateTo, p.Category, report.FormatMonth(year, month))
}
