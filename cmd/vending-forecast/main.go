package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/vending-forecast/internal/api/http"
	"github.com/i474232898/vending-forecast/internal/config"
	"github.com/i474232898/vending-forecast/internal/machine"
	"github.com/i474232898/vending-forecast/internal/scheduler"
	"github.com/i474232898/vending-forecast/internal/store"
	"github.com/i474232898/vending-forecast/internal/weather"
	"github.com/i474232898/vending-forecast/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Machine registry, seeded from a file and/or the demo fleet.
	machines := store.NewMemoryStore()
	if err := seedMachines(machines, cfg, logger); err != nil {
		logger.Fatal("failed to seed machines", zap.Error(err))
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	loc, err := weather.ResolveLocation(cfg.Location, cfg.LocationCity, cfg.LocationCountry,
		weather.GoogleGeocoder(cfg.GeocoderAPIKey))
	if err != nil {
		logger.Warn("geocoding failed; using configured coordinates", zap.Error(err))
	} else if cfg.LocationCity != "" && !cfg.TimezoneSet {
		logger.Warn("geocoded city uses the default timezone; set WEATHER_TIMEZONE to match",
			zap.String("city", cfg.LocationCity), zap.String("timezone", loc.Timezone))
	}

	// Open-Meteo first; keyed providers only as fallbacks when configured.
	sources := []weather.Source{providers.NewOpenMeteoProvider(httpClient)}
	if cfg.WeatherAPIKey != "" {
		sources = append(sources, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	if cfg.OpenWeatherAPIKey != "" {
		sources = append(sources, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	forecasts := weather.NewService(providers.NewChain(logger, sources...), loc, cfg.ForecastDays, logger)

	sched := scheduler.New(forecasts, cfg.RefreshInterval, 2*cfg.HTTPTimeout, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp(true)
	httpapi.RegisterRoutes(app, machines, forecasts)

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("location", loc.Key()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func seedMachines(machines *store.MemoryStore, cfg *config.AppConfig, logger *zap.Logger) error {
	if cfg.SeedFile != "" {
		inputs, err := machine.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		machines.Seed(inputs)
		logger.Info("seeded machines from file", zap.String("path", cfg.SeedFile), zap.Int("count", len(inputs)))
		return nil
	}
	if cfg.SeedDemoMachines {
		seeded := machines.Seed(machine.DefaultMachines())
		logger.Info("seeded demo machines", zap.Int("count", len(seeded)))
	}
	return nil
}
