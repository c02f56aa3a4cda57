package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/config"
	"github.com/felipepalage/agorahora-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Establishment{},
		&models.User{},
		&models.Professional{},
		&models.Specialty{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.Settings{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE establishments
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Backstop no banco para o invariante de não sobreposição: mesmo
	// que duas requisições passem pela checagem otimista ao mesmo
	// tempo, só uma insere. Violação chega como SQLSTATE 23P01.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            professional_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status IN ('pending', 'confirmed'))
    `)

	return db
}
