package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/couchcryptid/waste-data-etl/internal/config"
	"github.com/couchcryptid/waste-data-etl/internal/domain"
	"github.com/couchcryptid/waste-data-etl/internal/observability"
)

// Store persists records to MySQL with natural-key idempotent upserts.
// waste_generation_by_region is keyed by (year, sido, sigungu) and
// waste_company_by_region by (year, entrps_nm, adres); re-running a load
// rewrites the same rows instead of duplicating them.
type Store struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Open connects to MySQL, applies the pool settings, and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Store, error) {
	db, err := sqlx.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	logger.Info("connected to mysql", "host", cfg.DBHost, "database", cfg.DBName)
	return &Store{db: db, logger: logger, metrics: metrics}, nil
}

// NewStore wraps an existing connection. Tests use it with a mock driver.
func NewStore(db *sqlx.DB, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{db: db, logger: logger, metrics: metrics}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports connection health for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const upsertRegionalSQL = `
INSERT INTO waste_generation_by_region (
    year, sido, sigungu, waste_type, total_amount, recycle_amount,
    incineration_amount, landfill_amount, other_amount,
    self_recycle_amount, self_incineration_amount, self_landfill_amount, self_other_amount,
    consigned_recycle_amount, consigned_incineration_amount, consigned_landfill_amount, consigned_other_amount,
    public_recycle_amount, public_incineration_amount, public_landfill_amount, public_other_amount
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    waste_type = VALUES(waste_type),
    total_amount = VALUES(total_amount),
    recycle_amount = VALUES(recycle_amount),
    incineration_amount = VALUES(incineration_amount),
    landfill_amount = VALUES(landfill_amount),
    other_amount = VALUES(other_amount),
    self_recycle_amount = VALUES(self_recycle_amount),
    self_incineration_amount = VALUES(self_incineration_amount),
    self_landfill_amount = VALUES(self_landfill_amount),
    self_other_amount = VALUES(self_other_amount),
    consigned_recycle_amount = VALUES(consigned_recycle_amount),
    consigned_incineration_amount = VALUES(consigned_incineration_amount),
    consigned_landfill_amount = VALUES(consigned_landfill_amount),
    consigned_other_amount = VALUES(consigned_other_amount),
    public_recycle_amount = VALUES(public_recycle_amount),
    public_incineration_amount = VALUES(public_incineration_amount),
    public_landfill_amount = VALUES(public_landfill_amount),
    public_other_amount = VALUES(public_other_amount)`

// UpsertRegionalWaste writes one regional record, replacing any existing
// row with the same (year, sido, sigungu).
func (s *Store) UpsertRegionalWaste(ctx context.Context, rec domain.RegionalWasteRecord) error {
	args := []any{
		rec.Year, rec.Sido, rec.Sigungu, rec.WasteType, rec.TotalAmount,
	}
	for _, f := range domain.MeasureFields() {
		args = append(args, rec.Measure(f))
	}

	start := time.Now()
	_, err := s.db.ExecContext(ctx, upsertRegionalSQL, args...)
	s.metrics.UpsertDuration.WithLabelValues("waste_generation_by_region").Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("upsert regional record %s: %w", rec.Key(), err)
	}

	s.logger.Debug("upserted regional record", "key", rec.Key())
	return nil
}

const upsertFacilitySQL = `
INSERT INTO waste_company_by_region (
    year, entrps_nm, rprsntv, adres, telno,
    empl_cnt, area, wste, product_name, process_mth,
    latitude, longitude
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    telno = VALUES(telno),
    empl_cnt = VALUES(empl_cnt),
    area = VALUES(area),
    wste = VALUES(wste),
    product_name = VALUES(product_name),
    process_mth = VALUES(process_mth),
    rprsntv = VALUES(rprsntv),
    latitude = VALUES(latitude),
    longitude = VALUES(longitude)`

// UpsertFacility writes one facility record, replacing any existing row
// with the same (year, entrps_nm, adres).
func (s *Store) UpsertFacility(ctx context.Context, rec domain.WasteFacilityRecord) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, upsertFacilitySQL,
		rec.Year, rec.Name, rec.Representative, rec.Address, rec.Phone,
		rec.EmployeeCount, rec.Area, rec.WasteHandled, rec.ProductName, rec.ProcessMethod,
		rec.Latitude, rec.Longitude,
	)
	s.metrics.UpsertDuration.WithLabelValues("waste_company_by_region").Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("upsert facility record %s: %w", rec.Key(), err)
	}

	s.logger.Debug("upserted facility record", "key", rec.Key())
	return nil
}
