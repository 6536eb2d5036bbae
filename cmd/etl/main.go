// Command etl loads Korean national waste statistics into MySQL. The
// regional pipeline normalizes district aggregate rows out of published
// spreadsheets; the facility pipeline pulls the recycling facility
// registry and geocodes each address through Kakao.
//
// Usage:
//
//	go run ./cmd/etl \
//	  -pipeline all \
//	  -dir data/waste \
//	  -year 2022 \
//	  -db-config db_config.txt \
//	  -secrets secrets.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/olekukonko/tablewriter"

	"github.com/couchcryptid/waste-data-etl/internal/adapter/httpserv"
	"github.com/couchcryptid/waste-data-etl/internal/adapter/kakao"
	"github.com/couchcryptid/waste-data-etl/internal/adapter/mysql"
	"github.com/couchcryptid/waste-data-etl/internal/adapter/recycling"
	"github.com/couchcryptid/waste-data-etl/internal/adapter/spreadsheet"
	"github.com/couchcryptid/waste-data-etl/internal/config"
	"github.com/couchcryptid/waste-data-etl/internal/domain"
	"github.com/couchcryptid/waste-data-etl/internal/observability"
	"github.com/couchcryptid/waste-data-etl/internal/pipeline"
)

func main() {
	pipelineFlag := flag.String("pipeline", "all", "which pipeline to run: regional, facility, or all")
	dir := flag.String("dir", "data", "root directory of regional waste spreadsheets")
	year := flag.Int("year", time.Now().Year()-1, "report year to load")
	dbConfig := flag.String("db-config", "db_config.txt", "path to database settings file")
	secrets := flag.String("secrets", "secrets.txt", "path to API credentials file")
	flag.Parse()

	mode := config.Mode(*pipelineFlag)
	switch mode {
	case config.ModeRegional, config.ModeFacility, config.ModeAll:
	default:
		fmt.Fprintf(os.Stderr, "unknown pipeline %q\n", *pipelineFlag)
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(mode, *dbConfig, *secrets)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mysql.Open(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(ctx, mode, cfg, store, logger, metrics, *dir, *year); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode config.Mode, cfg *config.Config, store *mysql.Store, logger *slog.Logger, metrics *observability.Metrics, dir string, year int) error {
	// Build the active pipelines first so /readyz can report each one by
	// name alongside the store connection.
	var (
		regional *pipeline.Regional
		facility *pipeline.Facility
	)
	checks := []httpserv.Check{
		{Name: "mysql", Checker: httpserv.ReadinessFunc(store.Ping)},
	}

	if mode.Regional() {
		reader := spreadsheet.NewReader(logger)
		regional = pipeline.NewRegional(reader, store, logger, metrics)
		checks = append(checks, httpserv.Check{Name: "regional", Checker: regional})
	}

	if mode.Facility() {
		client := kakao.NewClient(cfg.KakaoAPIKey, cfg.GeocodeTimeout, logger, metrics)
		paced := kakao.NewPacedGeocoder(client, cfg.GeocodeInterval, clockwork.NewRealClock())
		geocoder := kakao.NewCachedGeocoder(paced, cfg.GeocodeCacheSize, metrics)

		registry := recycling.NewClient(cfg.RegistryUserID, cfg.RegistryKey, cfg.RegistryTimeout, logger)
		facility = pipeline.NewFacility(registry, geocoder, store, logger, metrics)
		checks = append(checks, httpserv.Check{Name: "facility", Checker: facility})
	}

	// Expose health and metrics while the batch runs, if configured.
	if cfg.HTTPAddr != "" {
		srv := httpserv.NewServer(cfg.HTTPAddr, checks, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	var reports []*domain.RunReport

	if regional != nil {
		report, err := regional.Run(ctx, dir, year)
		if err != nil {
			return fmt.Errorf("regional pipeline: %w", err)
		}
		reports = append(reports, report)
	}

	if facility != nil {
		report, err := facility.Run(ctx, year)
		if err != nil {
			return fmt.Errorf("facility pipeline: %w", err)
		}
		reports = append(reports, report)
	}

	printSummary(reports)

	for _, r := range reports {
		if r.Failed() > 0 {
			return fmt.Errorf("%d records failed to load", totalFailed(reports))
		}
	}
	return nil
}

func totalFailed(reports []*domain.RunReport) int {
	n := 0
	for _, r := range reports {
		n += r.Failed()
	}
	return n
}

func printSummary(reports []*domain.RunReport) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Pipeline", "Loaded", "Skipped", "Failed"})
	for _, r := range reports {
		failed := fmt.Sprintf("%d", r.Failed())
		if r.Failed() > 0 {
			failed = red(failed)
		}
		table.Append([]string{
			r.Pipeline,
			green(fmt.Sprintf("%d", r.Loaded())),
			yellow(fmt.Sprintf("%d", r.Skipped())),
			failed,
		})
	}
	table.Render()

	for _, r := range reports {
		for _, f := range r.Failures() {
			fmt.Printf("%s %s %s: %v\n", red("✗"), f.Source, f.Key, f.Err)
		}
	}
}
