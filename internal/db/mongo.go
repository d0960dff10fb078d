package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/festivefusion/festival-api/internal/config"
	"github.com/festivefusion/festival-api/internal/repository/dao/mongodao"
)

// OpenMongo connects, pings the primary and makes sure the indexes exist.
func OpenMongo(ctx context.Context, conf *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(conf.URI).
		SetMaxPoolSize(conf.MaxPoolSize).
		SetConnectTimeout(conf.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo.Connect -> %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, conf.ConnectTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("client.Ping -> %w", err)
	}

	database := client.Database(conf.Database)
	if err = mongodao.InitCollections(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongodao.InitCollections -> %w", err)
	}

	zap.L().Info("connected to mongo", zap.String("database", conf.Database))

	return client, database, nil
}
