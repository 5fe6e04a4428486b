package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/validation"
)

// SyncCatalog loads the YAML catalog at path, validates it against the schema
// in schemaDir and seeds any types the database does not have yet.
// A missing file is not an error: the built-in types are always available.
func SyncCatalog(ctx context.Context, svc catalog.Service, path, schemaDir string) error {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	types, err := catalog.LoadFile(path, validation.NewSchemaValidator(), schemaDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn(LogMsgCatalogFileMissing, "path", path)
			return nil
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	seeded, err := svc.Seed(ctx, types)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
	}

	slog.Info(LogMsgCatalogSyncComplete, "defined", len(types), "seeded", seeded)
	return nil
}
