package database

import (
	"time"

	"bakery-backoffice/internal/model"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormWriter forwards gorm's warnings and errors to zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	zlog.Warn().Str("component", "gorm").Msgf(format, args...)
}

// ConnectDB opens the postgres connection used by the API and the bootstrap tool.
func ConnectDB(dsn string) *gorm.DB {
	newLogger := logger.New(
		gormWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled (transaction mode) proxies
	}), &gorm.Config{
		Logger:         newLogger,
		PrepareStmt:    false,
		TranslateError: true,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to get database handle")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zlog.Info().Msg("Database connection established")
	return db
}

// Migrate creates or updates the tables of every persisted record.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
