package testhelpers

import (
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewZoneRepositoryForTest creates a zone repository with test database and logger
func NewZoneRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ZoneStore {
	return postgres.NewZoneRepository(NewDBForTest(db, logger))
}
