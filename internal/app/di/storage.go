// Package di は設定から具体的なアダプターを選択して組み立てるファクトリを提供します。
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	authadapters "rentease_backend/internal/feature/auth/adapters"
	authusecase "rentease_backend/internal/feature/auth/usecase"
	propertyadapters "rentease_backend/internal/feature/property/adapters"
	propertyusecase "rentease_backend/internal/feature/property/usecase"
	"rentease_backend/internal/platform/config"
	"rentease_backend/internal/platform/db"
	"rentease_backend/internal/platform/http/handler"
	platformmongo "rentease_backend/internal/platform/mongo"
)

// connectTimeout はストレージ接続の上限時間です。
const connectTimeout = 30 * time.Second

// Storage は選択されたバックエンドのリポジトリ群です。
type Storage struct {
	Users      authusecase.UserRepository
	Properties propertyusecase.PropertyRepository
	// Check はレディネスプローブ用の疎通確認です。
	Check handler.Check
	// Close は接続を解放します。
	Close func(ctx context.Context) error
}

// NewStorage は cfg.StorageDriver に応じて MongoDB または SQL のリポジトリを生成します。
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return newMongoStorage(ctx, cfg)
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		return newSQLStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func newMongoStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	database, err := platformmongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB, connectTimeout)
	if err != nil {
		return nil, err
	}
	users := authadapters.NewUserMongo(database)
	if err := users.EnsureIndexes(ctx); err != nil {
		slog.Warn("failed to ensure user indexes", "error", err)
	}
	return &Storage{
		Users:      users,
		Properties: propertyadapters.NewPropertyMongo(database),
		Check: func(ctx context.Context) error {
			return database.Client().Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			return database.Client().Disconnect(ctx)
		},
	}, nil
}

func newSQLStorage(cfg *config.Config) (*Storage, error) {
	dbCfg := db.LoadConfigFromEnv()
	dbCfg.Driver = cfg.StorageDriver
	dbCfg.SQLitePath = cfg.SQLitePath

	gdb, err := db.Open(dbCfg, connectTimeout)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations || cfg.StorageDriver == config.DriverSQLite {
		if err := db.Migrate(gdb, &authadapters.UserModel{}, &propertyadapters.PropertyModel{}); err != nil {
			return nil, err
		}
		slog.Info("database migrated", "driver", cfg.StorageDriver)
	}
	return &Storage{
		Users:      authadapters.NewUserGorm(gdb),
		Properties: propertyadapters.NewPropertyGorm(gdb),
		Check:      sqlPing(gdb),
		Close: func(context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func sqlPing(gdb *gorm.DB) handler.Check {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
