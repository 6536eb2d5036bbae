package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
	"github.com/couchcryptid/waste-data-etl/internal/observability"
)

// DocumentReader discovers and reads source workbooks.
type DocumentReader interface {
	Discover(root string) ([]string, error)
	Read(path string) (domain.SourceDocument, error)
}

// RegionalLoader writes regional records to the store.
type RegionalLoader interface {
	UpsertRegionalWaste(ctx context.Context, rec domain.RegionalWasteRecord) error
}

// Regional runs the spreadsheet pipeline: discover workbooks, map their
// headers, keep only district aggregate rows, and upsert the results.
type Regional struct {
	reader  DocumentReader
	loader  RegionalLoader
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewRegional creates the regional waste pipeline.
func NewRegional(reader DocumentReader, loader RegionalLoader, logger *slog.Logger, metrics *observability.Metrics) *Regional {
	return &Regional{
		reader:  reader,
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the pipeline has loaded at least one record.
func (p *Regional) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not loaded any records yet")
	}
	return nil
}

// Run processes every workbook under root for the given report year. A
// document with unusable headers or no aggregate rows is skipped whole;
// a bad row or failed upsert fails that record only. Only discovery
// errors and context cancellation abort the run.
func (p *Regional) Run(ctx context.Context, root string, year int) (*domain.RunReport, error) {
	p.logger.Info("regional pipeline started", "root", root, "year", year)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	paths, err := p.reader.Discover(root)
	if err != nil {
		return nil, fmt.Errorf("discover workbooks: %w", err)
	}

	report := &domain.RunReport{Pipeline: "regional"}
	for _, path := range paths {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		p.processDocument(ctx, path, year, report)
	}

	p.logger.Info("regional pipeline finished",
		"documents", len(paths),
		"loaded", report.Loaded(),
		"skipped", report.Skipped(),
		"failed", report.Failed(),
	)
	return report, nil
}

func (p *Regional) processDocument(ctx context.Context, path string, year int, report *domain.RunReport) {
	doc, err := p.reader.Read(path)
	if err != nil {
		p.logger.Warn("skipping unreadable workbook", "path", path, "error", err)
		p.metrics.DocumentsSkipped.Inc()
		report.Add(domain.RecordResult{
			Source:  path,
			Outcome: domain.OutcomeSkipped,
			Err:     err,
		})
		return
	}

	mapping := domain.MapHeader(doc.CategoryRow, doc.SubRow)
	if !mapping.Recognized() {
		p.logger.Warn("skipping workbook with unrecognized headers",
			"path", path,
			"unrecognized", mapping.Unrecognized,
		)
		p.metrics.DocumentsSkipped.Inc()
		report.Add(domain.RecordResult{
			Source:  path,
			Outcome: domain.OutcomeSkipped,
			Err:     domain.ErrNoRecognizedHeaders,
		})
		return
	}
	if len(mapping.Unrecognized) > 0 {
		p.logger.Info("workbook has unmapped columns",
			"path", path,
			"unrecognized", mapping.Unrecognized,
		)
	}

	loaded := 0
	totals := 0
	for _, row := range doc.Rows {
		if !domain.IsTotalRow(mapping, row) {
			continue
		}
		totals++

		rec, err := domain.BuildRegionalRecord(year, mapping, row)
		if err != nil {
			p.logger.Warn("failed to build record", "path", path, "error", err)
			p.metrics.RecordsFailed.WithLabelValues("regional").Inc()
			report.Add(domain.RecordResult{
				Source:  path,
				Outcome: domain.OutcomeFailed,
				Err:     err,
			})
			continue
		}

		if err := p.loader.UpsertRegionalWaste(ctx, rec); err != nil {
			p.logger.Error("failed to load record", "key", rec.Key(), "error", err)
			p.metrics.RecordsFailed.WithLabelValues("regional").Inc()
			report.Add(domain.RecordResult{
				Source:  path,
				Key:     rec.Key(),
				Outcome: domain.OutcomeFailed,
				Err:     err,
			})
			continue
		}

		p.metrics.RecordsLoaded.WithLabelValues("regional").Inc()
		report.Add(domain.RecordResult{
			Source:  path,
			Key:     rec.Key(),
			Outcome: domain.OutcomeLoaded,
		})
		loaded++
	}

	if totals == 0 {
		p.logger.Warn("skipping workbook without aggregate rows", "path", path)
		p.metrics.DocumentsSkipped.Inc()
		report.Add(domain.RecordResult{
			Source:  path,
			Outcome: domain.OutcomeSkipped,
			Err:     domain.ErrNoTotalRows,
		})
		return
	}

	p.metrics.DocumentsProcessed.Inc()
	if loaded > 0 {
		p.ready.Store(true)
	}
	p.logger.Info("processed workbook", "path", path, "loaded", loaded)
}
