// Package db は SQL バックエンド（PostgreSQL / MySQL / SQLite）への GORM 接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	Driver       string // "postgres" / "mysql" / "sqlite"
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQL のインスタンス接続名（MySQL のみ）
	SQLitePath   string
}

// LoadConfigFromEnv は環境変数から Config を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:       os.Getenv("STORAGE_DRIVER"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
	}
}

// BuildDSN は MySQL 用の DSN を生成します。
// InstanceName が設定されている場合は Cloud SQL の Unix ソケットを優先します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN は PostgreSQL 用のキーバリュー形式 DSN を生成します。
func BuildPostgresDSN(cfg Config) string {
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, port)
}

// Opener は DSN から *gorm.DB を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は timeout に達するまで retryInterval ごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は cfg.Driver に応じたダイアレクタで接続します。
func Open(cfg Config, timeout time.Duration) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	switch cfg.Driver {
	case "postgres":
		return ConnectWithRetry(BuildPostgresDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	case "mysql":
		return ConnectWithRetry(BuildDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(mysql.Open(dsn), gcfg)
		})
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = "rentease.db"
		}
		return gorm.Open(sqlite.Open(path), gcfg)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}
}

// Migrate は models のテーブルを作成・更新します。
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
