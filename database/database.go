package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver
)

type Database struct {
	db                   *gorm.DB
	projectRepo          *ProjectRepo
	feedbackRepo         *FeedbackRepo
	adminDetailsRepo     *AdminDetailsRepo
	adminCredentialsRepo *AdminCredentialsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                   db,
		projectRepo:          NewProjectRepo(db),
		feedbackRepo:         NewFeedbackRepo(db),
		adminDetailsRepo:     NewAdminDetailsRepo(db),
		adminCredentialsRepo: NewAdminCredentialsRepo(db),
	}
}

// Open connects to the database selected by cfg.Type.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Type {
	case "", "sqlite":
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 1
		}
		return OpenSQLite(sqliteDSN(cfg.SQLitePath), maxOpen)
	case "postgres":
		return openPostgres(cfg)
	default:
		return nil, errs.NewConfigInvalidError("DB_TYPE", "must be sqlite or postgres")
	}
}

// OpenSQLite opens a SQLite database through the modernc driver. SQLite allows a
// single writer, so maxOpen is normally 1; ":memory:" databases require it.
func OpenSQLite(dsn string, maxOpen int) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), &gorm.Config{
		Logger: newLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	return db, nil
}

func openPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.URL,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.ReplicaURL != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  cfg.ReplicaURL,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func newLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) FeedbackRepo() *FeedbackRepo {
	return d.feedbackRepo
}

func (d Database) AdminDetailsRepo() *AdminDetailsRepo {
	return d.adminDetailsRepo
}

func (d Database) AdminCredentialsRepo() *AdminCredentialsRepo {
	return d.adminCredentialsRepo
}

// Ping checks that the underlying connection is alive.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn with repositories bound to a single transaction. Every
// write made through tx is rolled back when fn returns an error.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates every table.
func (d Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedData holds the first-run rows for the singleton tables. A nil
// Credentials leaves the credentials table untouched.
type SeedData struct {
	Details     models.AdminDetails
	Credentials *models.AdminCredentials
}

// Seed inserts the singleton rows that do not exist yet. It reports which ones it created.
func (d Database) Seed(ctx context.Context, data SeedData) (detailsSeeded, credentialsSeeded bool, err error) {
	err = d.Transaction(ctx, func(tx Database) error {
		if _, err := tx.AdminDetailsRepo().First(ctx); errors.Is(err, gorm.ErrRecordNotFound) {
			details := data.Details
			if err := tx.AdminDetailsRepo().Add(ctx, &details); err != nil {
				return fmt.Errorf("seed admin details: %w", err)
			}
			detailsSeeded = true
		} else if err != nil {
			return err
		}

		if data.Credentials == nil {
			return nil
		}
		count, err := tx.AdminCredentialsRepo().Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			creds := *data.Credentials
			if err := tx.AdminCredentialsRepo().Add(ctx, &creds); err != nil {
				return fmt.Errorf("seed admin credentials: %w", err)
			}
			credentialsSeeded = true
		}
		return nil
	})
	return detailsSeeded, credentialsSeeded, err
}

// GetDB returns the underlying database connection for debugging purposes
func (d Database) GetDB() *gorm.DB {
	return d.db
}
