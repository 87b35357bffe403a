package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/config"
	"github.com/bookitlabs/bookit-server/internal/models"
	"github.com/bookitlabs/bookit-server/internal/timezone"
)

// SchemaVersion is bumped whenever the table set changes. Migration runs
// only when the stored version differs.
const SchemaVersion = "1.2.0"

const schemaVersionKey = "schema_version"

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates or upgrades the schema idempotently, keyed by the
// schema_version settings row.
func Migrate(db *gorm.DB) error {
	if current := storedVersion(db); current == SchemaVersion {
		logrus.WithField("version", current).Debug("schema up to date")
		return nil
	}

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Category{},
		&models.Staff{},
		&models.StaffService{},
		&models.Customer{},
		&models.Booking{},
		&models.Payment{},
		&models.WorkingHours{},
		&models.Setting{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	seedDefaultSettings(db)

	if err := saveVersion(db, SchemaVersion); err != nil {
		return err
	}

	logrus.WithField("version", SchemaVersion).Info("schema migrated")
	return nil
}

func storedVersion(db *gorm.DB) string {
	if !db.Migrator().HasTable(&models.Setting{}) {
		return ""
	}
	var s models.Setting
	if err := db.Where("key = ?", schemaVersionKey).First(&s).Error; err != nil {
		return ""
	}
	return s.Value
}

func saveVersion(db *gorm.DB, version string) error {
	var s models.Setting
	err := db.Where("key = ?", schemaVersionKey).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&models.Setting{Key: schemaVersionKey, Value: version}).Error
	}
	if err != nil {
		return err
	}
	s.Value = version
	return db.Save(&s).Error
}

var defaultSettings = map[string]string{
	"timezone":                  timezone.DefaultTimezone,
	"currency":                  "USD",
	"date_format":               "2006-01-02",
	"time_format":               "15:04",
	"min_advance_minutes":       "120",
	"cancellation_notice_hours": "24",
}

func seedDefaultSettings(db *gorm.DB) {
	for key, value := range defaultSettings {
		var count int64
		db.Model(&models.Setting{}).Where("key = ?", key).Count(&count)
		if count == 0 {
			db.Create(&models.Setting{Key: key, Value: value})
		}
	}
}
