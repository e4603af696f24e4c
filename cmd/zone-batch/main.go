package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/delivery-zones/internal/app"
	"github.com/delivery-zones/internal/batch"
	"github.com/delivery-zones/internal/config"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/logger"
	"github.com/delivery-zones/internal/repository/geojson"
	"github.com/delivery-zones/internal/usecase"
)

const serviceName = "zone-batch"

func main() {
	in := flag.String("in", "", "input workbook (.xlsx) with id/lat/lon columns")
	out := flag.String("out", "zones_result.xlsx", "output workbook")
	sheet := flag.String("sheet", "", "input sheet name (default: first sheet)")
	zonesFile := flag.String("zones", "", "GeoJSON zones file (default: ZONES_SOURCE from config)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: zone-batch -in points.xlsx [-out result.xlsx] [-zones zones.geojson]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level, serviceName)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	var zoneRepo repository.ZoneRepository
	if *zonesFile != "" {
		zoneRepo = geojson.NewZoneRepository(*zonesFile, log)
	} else {
		repo, closer, err := app.NewZoneRepository(cfg, log)
		if err != nil {
			log.Fatal("Failed to open delivery zone source", zap.Error(err))
		}
		defer closer.Close()
		zoneRepo = repo
	}

	ctx := context.Background()

	// Геокодирование не нужно: на входе только координаты
	zoneUC := usecase.NewZoneUseCase(zoneRepo, nil, app.CityCenter(cfg), log)
	if _, err := zoneUC.LoadCatalog(ctx); err != nil {
		log.Fatal("Failed to load delivery zone catalog", zap.Error(err))
	}

	rows, err := batch.ReadRows(*in, *sheet)
	if err != nil {
		log.Fatal("Failed to read input workbook", zap.String("path", *in), zap.Error(err))
	}

	results, err := batch.Resolve(ctx, zoneUC, rows)
	if err != nil {
		log.Fatal("Batch resolution failed", zap.Error(err))
	}

	if err := batch.WriteResults(*out, "", results); err != nil {
		log.Fatal("Failed to write output workbook", zap.String("path", *out), zap.Error(err))
	}

	matched, invalid := 0, 0
	for _, r := range results {
		switch {
		case r.Err != "":
			invalid++
		case r.Matched:
			matched++
		}
	}

	log.Info("Batch resolution finished",
		zap.Int("rows", len(results)),
		zap.Int("matched", matched),
		zap.Int("invalid", invalid),
		zap.String("output", *out))
}
