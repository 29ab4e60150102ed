package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/seenimoa/trademetriks/internal/logger"
	"github.com/seenimoa/trademetriks/internal/trace"
	"github.com/seenimoa/trademetriks/pkg/models"
)

// ErrBadAsOf is returned for an unparseable as-of date.
var ErrBadAsOf = errors.New("invalid as-of date")

// Compute runs the aggregation pipeline over normalized trades. asOf is the
// reference "now" used for the month KPI; nothing here reads the wall clock,
// so identical inputs always give identical dashboards.
func Compute(ctx context.Context, trades []models.Trade, asOf time.Time) (*models.Dashboard, error) {
	ctx, span := trace.StartSpan(ctx, "analytics.compute", attribute.Int("trades", len(trades)))
	defer span.End()
	defer logger.TimeTrack(time.Now(), "analytics.compute")

	var closed []models.ClosedPosition
	if err := stage(ctx, "analytics.closed_positions", func() {
		closed = ClosedPositions(trades)
	}); err != nil {
		return nil, err
	}

	var daily []models.DailyPnL
	var kpis models.KPIs
	if err := stage(ctx, "analytics.kpis", func() {
		daily = DailySeries(closed)
		kpis = ComputeKPIs(closed, daily, asOf)
	}); err != nil {
		return nil, err
	}

	db := &models.Dashboard{
		GeneratedAt:     asOf,
		DataAsOf:        LatestDate(trades),
		Trades:          len(trades),
		ClosedPositions: len(closed),
		TradingDays:     len(daily),
		KPIs:            kpis,
		Daily:           daily,
	}

	if err := stage(ctx, "analytics.series", func() {
		db.Weekday = WeekdaySeries(daily)
		db.Monthly = MonthSeries(closed)
		db.Extremes = ComputeExtremes(daily)
	}); err != nil {
		return nil, err
	}

	if err := stage(ctx, "analytics.breakdown", func() {
		db.Symbols = SymbolSeries(closed)
		db.Instruments = InstrumentSeries(closed)
	}); err != nil {
		return nil, err
	}

	if err := stage(ctx, "analytics.recent_trades", func() {
		db.RecentTrades = RecentTrades(trades, db.DataAsOf)
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("closed_positions", len(closed)),
		attribute.Int("trading_days", len(daily)),
	)
	logger.Debug("dashboard computed", logger.Fields{
		"trades":           len(trades),
		"closed_positions": len(closed),
		"trading_days":     len(daily),
		"data_as_of":       db.DataAsOf.String(),
	})
	return db, nil
}

// ResolveAsOf turns an optional "YYYY-MM-DD" override into the reference
// time for the month KPI: midnight of that day in loc, or now when empty.
func ResolveAsOf(date string, loc *time.Location, now time.Time) (time.Time, error) {
	if date == "" {
		return now.In(loc), nil
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBadAsOf, err)
	}
	return d.In(loc), nil
}

// stage runs fn inside its own span, refusing to start once ctx is done.
func stage(ctx context.Context, name string, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := trace.StartSpan(ctx, name)
	defer span.End()
	fn()
	return nil
}
