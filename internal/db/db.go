package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/agendaja-guias/internal/config"
	"github.com/BruksfildServices01/agendaja-guias/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDev() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate cria ou ajusta as tabelas de vendas, guias e auditoria.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Venda{},
		&models.Guia{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// guias antigas sem data de expiração calculada
	if err := db.Exec(`
        UPDATE guias
        SET data_expiracao = data_emissao + INTERVAL '30 days'
        WHERE data_expiracao IS NULL AND status = 'expirada'
    `).Error; err != nil {
		return fmt.Errorf("backfill data_expiracao: %w", err)
	}

	return nil
}
