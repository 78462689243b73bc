package db

import (
	"fmt"

	"github.com/linskybing/accel-platform/internal/config"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/internal/domain/quota"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)
}

// Init connects to postgres and runs the schema migration.
func Init() error {
	gormDB, err := Open(DSN())
	if err != nil {
		return err
	}
	if err := Migrate(gormDB); err != nil {
		return err
	}
	DB = gormDB
	logrus.Info("Database connected and migrated")
	return nil
}

func Open(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return gormDB, nil
}

func createEnums(gormDB *gorm.DB) {
	enums := []string{
		`DO $$ BEGIN CREATE TYPE arq_state AS ENUM ('Initial', 'Bound', 'Unbound', 'BindFailed'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}

	for _, enum := range enums {
		if err := gormDB.Exec(enum).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create enum: %s", enum)
		}
	}
}

// Migrate creates the enum types and tables. It is safe to run repeatedly.
func Migrate(gormDB *gorm.DB) error {
	createEnums(gormDB)

	if err := gormDB.AutoMigrate(
		&deviceprofile.DeviceProfile{},
		&arq.ARQ{},
		&quota.Usage{},
		&quota.Reservation{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
