// Package app wires configuration, storage and the contact service together
// for the server and CLI entry points.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/countycontacts/internal/config"
	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/JonMunkholm/countycontacts/internal/regions"
	"github.com/JonMunkholm/countycontacts/internal/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App owns the long-lived objects built from a Config.
type App struct {
	Config  *config.Config
	Store   *core.Store
	Service *core.Service

	closers []func()
}

// New opens the configured backend, loads the store and builds the service.
// Call Close when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	regionList, err := regions.Load(cfg.Regions.File)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}

	backend, closeBackend, err := OpenBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()

	store, err := core.OpenStore(loadCtx, backend)
	if err != nil {
		closeBackend()
		return nil, err
	}

	opts, err := ServiceOptions(cfg)
	if err != nil {
		closeBackend()
		return nil, err
	}

	slog.Info("contact store loaded",
		"backend", cfg.Storage.Backend,
		"contacts", store.Len(),
		"regions", regionList.Len(),
	)

	return &App{
		Config:  cfg,
		Store:   store,
		Service: core.NewService(store, regionList, opts),
		closers: []func(){closeBackend},
	}, nil
}

// Close releases backend connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// ServiceOptions translates import settings into core.Options.
func ServiceOptions(cfg *config.Config) (core.Options, error) {
	policy, err := core.ParseUnknownRegionPolicy(cfg.Import.UnknownRegions)
	if err != nil {
		return core.Options{}, err
	}
	return core.Options{
		UnknownRegions:       policy,
		MaxImportSize:        cfg.Import.MaxFileSize,
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
		HistorySize:          cfg.Import.HistorySize,
	}, nil
}

// OpenBackend builds the DocumentStore named by cfg.Backend. The returned
// func releases any connections and is never nil.
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (core.DocumentStore, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Backend) {
	case config.BackendFile:
		return storage.NewFile(cfg.DataFile), noop, nil

	case config.BackendMemory:
		return storage.NewMemory(nil), noop, nil

	case config.BackendPostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgres(pool, cfg.DocumentID), pool.Close, nil

	case config.BackendDynamoDB:
		client, err := openDynamoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewDynamoDB(client, cfg.DynamoTable, cfg.DocumentID), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openPool(ctx context.Context, cfg config.StorageConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func openDynamoDB(ctx context.Context, cfg config.StorageConfig) (*dynamodb.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.DynamoRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.DynamoRegion))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	}), nil
}
