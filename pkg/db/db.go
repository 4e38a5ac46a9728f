package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

// New opens the database, migrates every model and applies the sqlite
// pragmas when the dialector is sqlite. Each call returns an independent
// handle.
func New(dialector gorm.Dialector) (*DB, error) {
	var logger = common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	logger.Info("Connected to database with dialector", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("db: sql handle: %w", err)
		}
		// one writer at a time, also keeps a shared in-memory database alive
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("db: enable sqlite foreign keys: %w", err)
		}
		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("db: set sqlite journal mode: %w", err)
		}
		if err := conn.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
			return nil, fmt.Errorf("db: set sqlite busy timeout: %w", err)
		}
	}

	if err := conn.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("db: migrate: %w", err)
	}

	logger.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

// Open picks the dialector named by the configuration.
func Open(cfg common.DbConfig) (*DB, error) {
	switch cfg.Type {
	case common.DbTypeMemory:
		return New(UseMemorySqliteDialector())
	case common.DbTypePostgres:
		return New(UsePostgresDialector(cfg.DSN))
	default:
		return New(UseSqliteDialector(cfg.Path))
	}
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UseSqliteDialector opens dbPath, falling back to GUARDIAN_DB_PATH and then
// guardian.db when it is empty.
func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		var found bool
		if dbPath, found = os.LookupEnv(common.EnvKeyGuardianDbPath); !found {
			dbPath = "guardian.db"
		}
	}
	return sqlite.Open(dbPath)
}

// UseMemorySqliteDialector returns a dialector for a fresh named in-memory
// database, so handles opened by different tests never share tables.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
