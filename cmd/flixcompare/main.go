package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/burningtree/flixbux-prices/internal/application/service"
	"github.com/burningtree/flixbux-prices/internal/config"
	"github.com/burningtree/flixbux-prices/internal/domain/ports"
	flixbus "github.com/burningtree/flixbux-prices/internal/infrastructures/flixbus/http/client"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/rates"
	"github.com/burningtree/flixbux-prices/internal/infrastructures/tracing"
	"github.com/burningtree/flixbux-prices/internal/transport/console"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	itinerary, err := config.ParseItinerary(os.Args[1:], cfg.Itinerary)
	if err != nil {
		log.Fatal("invalid itinerary", zap.Error(err))
	}
	if n := len(os.Args) - 1; n != 0 && n != config.ItineraryArgs {
		log.Warn("ignoring positional arguments, expected departure arrival date adults connection",
			zap.Int("got", n),
			zap.Int("want", config.ItineraryArgs),
		)
	}

	shutdownTracer, err := tracing.InitTracer("flixcompare", cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	rateTable, err := rates.Load(cfg.Compare.RatesPath, cfg.Compare.Currency)
	if err != nil {
		log.Fatal("failed to load rate table", zap.Error(err), zap.String("path", cfg.Compare.RatesPath))
	}
	log.Info("rate table loaded", zap.String("base", rateTable.Base()), zap.Strings("currencies", rateTable.Codes()))

	client := flixbus.NewClient(
		cfg.Flixbus.RootURL,
		cfg.Flixbus.UserAgent,
		&http.Client{Timeout: cfg.Flixbus.Timeout},
	)
	converter := service.NewConverter(rateTable, cfg.Compare.Currency)
	compareService := service.NewCompareService(log, client, client, converter, cfg.Compare.Concurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("getting all flixbus domains", zap.String("root_url", cfg.Flixbus.RootURL))

	var progress *console.Progress
	report, err := compareService.Run(ctx, itinerary, func(total int) ports.Progress {
		progress = console.NewProgress(os.Stderr, total)
		return progress
	})
	if err != nil {
		log.Fatal("failed to discover storefronts", zap.Error(err))
	}
	if progress != nil {
		progress.Finish()
	}

	console.RenderReport(os.Stdout, report)
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
