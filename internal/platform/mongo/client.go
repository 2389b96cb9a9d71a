// Package mongo は MongoDB クライアントの生成を提供します。
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect は uri に接続して Ping で疎通を確認し、dbName のデータベースを返します。
// 呼び出し側は不要になった時点で db.Client().Disconnect を呼ぶこと。
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	slog.Info("MongoDB connection successful", "database", dbName)
	return client.Database(dbName), nil
}
