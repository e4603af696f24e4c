package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// ResetSchema откатывает все *.down.sql в обратном порядке и применяет *.up.sql.
// Выполняется в одной транзакции, чтобы прерванный прогон не оставлял схему наполовину.
func ResetSchema(ctx context.Context, db *sqlx.DB, migrationsPath string) error {
	ups, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list up migrations: %w", err)
	}
	if len(ups) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	downs, err := filepath.Glob(filepath.Join(migrationsPath, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("list down migrations: %w", err)
	}

	sort.Strings(ups)
	sort.Sort(sort.Reverse(sort.StringSlice(downs)))

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, file := range append(downs, ups...) {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(file), err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(file), err)
		}
	}

	return tx.Commit()
}
