package db

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/shortlinks/internal/models"
	"gorm.io/gorm"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
)

type FactoryConfig struct {
	StorageType  StorageType
	PostgresDSN  string
	SQLiteDBPath string
}

// NewConnectionFactory открывает соединение с хранилищем нужного типа
// и прогоняет миграции.
func NewConnectionFactory(config FactoryConfig) (*gorm.DB, error) {
	switch config.StorageType {
	case StorageTypePostgres:
		if config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		return NewPostgres(config.PostgresDSN)
	case StorageTypeSQLite:
		if config.SQLiteDBPath == "" {
			return nil, errors.New("sqlite db path is empty")
		}
		return NewSQLite(config.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}

func migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.RedirectURL{},
		&models.PasteURL{},
		&models.UserAgent{},
		&models.Referer{},
		&models.URLView{},
	)
	if err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
