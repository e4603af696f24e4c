package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/config"
	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/pkg/logger"
	"github.com/delivery-zones/internal/repository/geojson"
	"github.com/delivery-zones/internal/repository/postgres"
	"github.com/delivery-zones/internal/usecase"
)

const serviceName = "zone-import"

func main() {
	file := flag.String("file", "", "GeoJSON FeatureCollection with delivery zones")
	dryRun := flag.Bool("dry-run", false, "validate only, do not write to the database")
	deleteID := flag.String("delete", "", "delete the zone with this id instead of importing")
	flag.Parse()

	if (*file == "") == (*deleteID == "") {
		fmt.Fprintln(os.Stderr, "usage: zone-import -file zones.geojson [-dry-run] | -delete <zone id>")
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

	var zones []*domain.DeliveryZone
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal("Failed to read zones file", zap.String("path", *file), zap.Error(err))
		}

		zones, err = geojson.ParseZones(data)
		if err != nil {
			log.Fatal("Failed to parse zones file", zap.Error(err))
		}

		// Проверяются все зоны, включая неактивные; невалидный файл не импортируется
		warnings, err := usecase.ValidateZones(zones)
		if err != nil {
			log.Fatal("Zones file is invalid, nothing imported", zap.Error(err))
		}
		for _, w := range warnings {
			log.Warn("Delivery zone is shadowed", zap.String("issue", w))
		}
		log.Info("Zones file is valid", zap.Int("zones", len(zones)))

		if *dryRun {
			return
		}
	}

	var id uuid.UUID
	if *deleteID != "" {
		if id, err = uuid.Parse(*deleteID); err != nil {
			log.Fatal("Invalid zone id", zap.String("id", *deleteID), zap.Error(err))
		}
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	importer := usecase.NewZoneImportUseCase(postgres.NewZoneRepository(db), log)

	if *deleteID != "" {
		if _, err := importer.Remove(ctx, id); err != nil {
			log.Fatal("Failed to delete delivery zone", zap.String("id", id.String()), zap.Error(err))
		}
		return
	}

	n, err := importer.Import(ctx, zones)
	if err != nil {
		log.Fatal("Import failed", zap.Int("saved", n), zap.Error(err))
	}

	log.Info("Import finished", zap.Int("zones", n))
}
