package spam

import (
	"context"
	"time"
)

// Report records that one user marked one phone number as spam. A reporter
// can mark a given number at most once; reports are not retractable.
type Report struct {
	ID          string
	ReporterID  string
	TargetPhone string
	ReportedAt  time.Time
}

// Aggregate is the derived per-phone counter the search engine reads. Its
// report_count always equals the number of distinct reports for the phone;
// this subsystem never decrements it.
type Aggregate struct {
	TargetPhone    string
	ReportCount    int
	LastReportedAt time.Time
}

// MarkResult captures the outcome of recording a report.
type MarkResult struct {
	// Created is false when the reporter had already marked this number.
	Created bool
	// ReportCount is the aggregate count after the call.
	ReportCount int
}

// Store is the contract implemented by spam-report backends. Mark must insert
// the report and update the aggregate as a single atomic unit, so the counter
// is never stale relative to the report that caused it and a retry never
// double-counts. Count must be an O(1) point lookup, never a scan over
// reports; it runs once per search-result candidate.
type Store interface {
	Mark(ctx context.Context, reporterID, targetPhone string) (MarkResult, error)
	Count(ctx context.Context, phone string) (int, error)
}
