package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ferndev/ragchat/internal/config"
	"github.com/ferndev/ragchat/internal/storage/sqlite"
	"github.com/ferndev/ragchat/pkg/log"
)

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

// initStorage opens the local database and hands back the KV repo both
// state blobs live in.
func initStorage(ctx context.Context) (*sql.DB, *sqlite.KVRepo, *config.AppConfig, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, nil, nil, err
	}

	appCfg := config.NewAppConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}

	return db, sqlite.NewKVRepo(db), appCfg, nil
}
