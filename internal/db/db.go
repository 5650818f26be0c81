package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/config"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
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
		&models.User{},
		&models.TeacherProfile{},
		&models.WeeklyAvailability{},
		&models.DateException{},
		&models.InstitutionalHoliday{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Respaldo a nivel de storage contra doble reserva concurrente:
	// dos transacciones pueden pasar la re-validación de slots a la vez,
	// pero solo un insert sobrevive a estas constraints.
	for _, stmt := range appointmentBackstops {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("failed to apply appointment constraints: %v", err)
		}
	}

	return db
}

// DDL idempotente: cada ALTER se salta si la constraint ya existe, así el
// arranque es repetible y un error real detiene el proceso en vez de
// perderse.
var appointmentBackstops = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1 FROM pg_constraint WHERE conname = 'chk_appointment_range'
        ) THEN
            ALTER TABLE appointments
            ADD CONSTRAINT chk_appointment_range CHECK (ends_at > starts_at);
        END IF;
    END $$`,

	// starts_at/ends_at se crean como timestamptz; el rango es tstzrange
	`DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1 FROM pg_constraint WHERE conname = 'excl_appointment_overlap'
        ) THEN
            ALTER TABLE appointments
            ADD CONSTRAINT excl_appointment_overlap
            EXCLUDE USING gist (
                teacher_profile_id WITH =,
                tstzrange(starts_at, ends_at) WITH &&
            )
            WHERE (status IN ('PENDIENTE', 'CONFIRMADA'));
        END IF;
    END $$`,
}
