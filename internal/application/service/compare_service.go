package service

import (
	"context"
	"errors"
	"fmt"

	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/burningtree/flixbux-prices/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type CompareService struct {
	log         *zap.Logger
	discoverer  ports.StorefrontDiscoverer
	prices      ports.PriceSource
	converter   *Converter
	concurrency int
}

func NewCompareService(log *zap.Logger, discoverer ports.StorefrontDiscoverer, prices ports.PriceSource, converter *Converter, concurrency int) *CompareService {
	if log == nil {
		log = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &CompareService{
		log:         log,
		discoverer:  discoverer,
		prices:      prices,
		converter:   converter,
		concurrency: concurrency,
	}
}

// ProgressFactory builds a progress indicator once the number of storefronts
// is known.
type ProgressFactory func(total int) ports.Progress

// Run discovers storefronts, prices the itinerary on each of them and ranks
// the result. Only a discovery failure is returned as an error.
func (s *CompareService) Run(ctx context.Context, itinerary models.Itinerary, newProgress ProgressFactory) (models.Report, error) {
	const op = "service.Run"

	storefronts, err := s.Discover(ctx)
	if err != nil {
		return models.Report{}, err
	}

	s.log.Info("discovering prices for connection",
		zap.String("op", op),
		zap.String("departure", itinerary.DepartureCity),
		zap.String("arrival", itinerary.ArrivalCity),
		zap.String("ride_date", itinerary.RideDateString()),
		zap.Int("adults", itinerary.Adults),
		zap.Int("connection", itinerary.Connection),
	)

	var progress ports.Progress
	if newProgress != nil {
		progress = newProgress(len(storefronts))
	}

	rows := s.Compare(ctx, storefronts, itinerary, progress)
	report := BuildReport(rows, s.converter.Target())

	s.log.Info("comparison finished",
		zap.String("op", op),
		zap.Int("ranked", len(report.Lines)-report.Unpriced),
		zap.Int("unpriced", report.Unpriced),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// Discover returns every storefront. A failure here aborts the whole run.
func (s *CompareService) Discover(ctx context.Context) ([]models.Storefront, error) {
	const op = "service.Discover"
	ctx, span := otel.Tracer("flixcompare/service").Start(ctx, op)
	defer span.End()

	storefronts, err := s.discoverer.DiscoverDomains(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "discovery failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("compare.storefronts", len(storefronts)))
	s.log.Info("storefronts discovered", zap.String("op", op), zap.Int("count", len(storefronts)))
	return storefronts, nil
}

// Compare prices the itinerary on every storefront with at most
// s.concurrency requests in flight. Per-storefront failures end up on the row
// and never stop the batch. progress may be nil.
func (s *CompareService) Compare(ctx context.Context, storefronts []models.Storefront, itinerary models.Itinerary, progress ports.Progress) []models.ComparisonRow {
	const op = "service.Compare"
	ctx, span := otel.Tracer("flixcompare/service").Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.Int("compare.storefronts", len(storefronts)),
		attribute.Int("compare.connection", itinerary.Connection),
		attribute.String("compare.ride_date", itinerary.RideDateString()),
	)

	rows := make([]models.ComparisonRow, len(storefronts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, storefront := range storefronts {
		i, storefront := i, storefront
		g.Go(func() error {
			rows[i] = s.compareOne(gctx, storefront, itinerary)
			if progress != nil {
				progress.Advance()
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, row := range rows {
		if !row.Ranked() {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("compare.unranked", failed))
	span.SetStatus(otelcodes.Ok, "ok")

	return rows
}

func (s *CompareService) compareOne(ctx context.Context, storefront models.Storefront, itinerary models.Itinerary) models.ComparisonRow {
	const op = "service.compareOne"
	ctx, span := otel.Tracer("flixcompare/service").Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("compare.storefront", storefront.URL))

	logger := s.log.With(
		zap.String("op", op),
		zap.String("storefront", storefront.URL),
		zap.String("label", storefront.Label),
	)

	row := models.ComparisonRow{Storefront: storefront}

	price, err := s.prices.GetPrice(ctx, storefront, itinerary)
	if err != nil {
		row.Err = err
		span.RecordError(err)
		if errors.Is(err, derr.ErrPriceUnavailable) {
			logger.Warn("no price for storefront", zap.Error(err))
			span.SetStatus(otelcodes.Error, "price unavailable")
		} else {
			logger.Error("price extraction failed", zap.Error(err))
			span.SetStatus(otelcodes.Error, "price extraction failed")
		}
		return row
	}
	row.Price = &price

	converted, ok := s.converter.Convert(price.Amount, price.Currency)
	if !ok {
		row.Err = fmt.Errorf("%s: %w", price.Currency, derr.ErrRateNotFound)
		logger.Warn("price not convertible",
			zap.String("amount", price.Amount),
			zap.String("currency", price.Currency),
			zap.String("target", s.converter.Target()),
		)
		span.SetStatus(otelcodes.Error, "rate not found")
		return row
	}
	row.Converted = &converted

	logger.Debug("price converted",
		zap.String("amount", price.Amount),
		zap.String("currency", price.Currency),
		zap.Float64("converted", converted),
	)
	span.SetStatus(otelcodes.Ok, "ok")
	return row
}
