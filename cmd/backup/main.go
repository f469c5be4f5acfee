package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/2beens/gymlog/internal"
	"github.com/2beens/gymlog/internal/backup"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/logging"
	"github.com/2beens/gymlog/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// gymlog document google drive backup cmd

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional file with secrets as env vars")
	credentialsFile := flag.String("gd-creds", "./drive-credentials.json", "google drive service account credentials json")
	folderName := flag.String("folder", backup.DefaultFolderName, "google drive folder to keep backups in")
	keep := flag.Int("keep", backup.DefaultKeep, "number of most recent backups to keep")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	timeout := flag.Duration("timeout", 2*time.Minute, "max duration of the whole backup")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load env file %s: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		ServiceName:   "gymlog-backup",
		LogsPath:      *logsPath,
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	})

	log.Println("starting gymlog backup ...")

	if cfg.StoreBackend == config.StoreMemory {
		log.Fatalln("memory store has nothing to back up")
	}

	if exists, err := pkg.PathExists(*credentialsFile, false); err != nil || !exists {
		log.Fatalf("google drive credentials file [%s] not found: %v", *credentialsFile, err)
	}
	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read google drive credentials file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("GYMLOG_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	var dbPool *pgxpool.Pool
	if cfg.StoreBackend == config.StorePostgres {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:   cfg.PostgresHost,
			DBPort:   cfg.PostgresPort,
			DBName:   cfg.PostgresDBName,
			User:     cfg.PostgresUser,
			Password: os.Getenv("GYMLOG_POSTGRES_PASS"),
			MaxConns: 1,
		})
		if err != nil {
			log.Fatalf("new db pool: %s", err)
		}
		defer dbPool.Close()
	}

	store, err := internal.NewDocumentStore(ctx, cfg, rdb, dbPool)
	if err != nil {
		log.Fatalf("new document store: %s", err)
	}

	driveUploader, err := backup.NewDriveUploader(ctx, credentialsFileBytes)
	if err != nil {
		log.Fatalf("failed to create google drive uploader: %s", err)
	}

	res, err := backup.NewService(store, driveUploader, *folderName, *keep, nil).Run(ctx)
	if err != nil {
		log.Fatalf("backup failed: %s", err)
	}

	log.Printf("backup done: %s (%s), revision %d, %d old backups removed", res.FileName, res.FileID, res.Revision, res.Pruned)
}
