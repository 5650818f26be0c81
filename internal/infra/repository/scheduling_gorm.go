package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Transacción
// --------------------------------------------------

func (r *SchedulingGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSchedulingGormRepository(tx))
	})
}

// --------------------------------------------------
// Identidad
// --------------------------------------------------

func (r *SchedulingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SchedulingGormRepository) ListActiveAdminEmails(
	ctx context.Context,
) ([]string, error) {

	var emails []string
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND active = ? AND email <> ''", models.RoleAdmin, true).
		Order("id ASC").
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

// --------------------------------------------------
// Perfil docente
// --------------------------------------------------

func (r *SchedulingGormRepository) GetTeacherProfile(
	ctx context.Context,
	id uint,
) (*models.TeacherProfile, error) {

	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SchedulingGormRepository) GetTeacherProfileByUser(
	ctx context.Context,
	userID uint,
) (*models.TeacherProfile, error) {

	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Disponibilidad
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWeeklyAvailability(
	ctx context.Context,
	teacherProfileID uint,
	weekday int,
) ([]models.WeeklyAvailability, error) {

	var rows []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("teacher_profile_id = ? AND weekday = ?", teacherProfileID, weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SchedulingGormRepository) ListDateExceptions(
	ctx context.Context,
	teacherProfileID uint,
	date time.Time,
	kind models.ExceptionKind,
) ([]models.DateException, error) {

	var rows []models.DateException
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_profile_id = ? AND date = ? AND kind = ?",
			teacherProfileID, date.Format("2006-01-02"), kind,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Citas (lectura)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("TeacherProfile").
		Preload("TeacherProfile.User").
		Preload("Representative").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListTeacherAppointmentsBetween(
	ctx context.Context,
	teacherProfileID uint,
	start time.Time,
	end time.Time,
	statuses []string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"teacher_profile_id = ? AND starts_at >= ? AND starts_at < ?",
			teacherProfileID, start, end,
		)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.Order("starts_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) CountTeacherActiveAppointments(
	ctx context.Context,
	teacherProfileID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"teacher_profile_id = ? AND starts_at >= ? AND starts_at < ? AND status IN ?",
			teacherProfileID, start, end, domain.ActiveStatuses(),
		).
		Count(&count).Error
	return count, err
}

func (r *SchedulingGormRepository) CountRepresentativeActiveAppointments(
	ctx context.Context,
	representativeID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"representative_id = ? AND starts_at >= ? AND starts_at < ? AND status IN ?",
			representativeID, start, end, domain.ActiveStatuses(),
		).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Citas (escritura)
// --------------------------------------------------

func (r *SchedulingGormRepository) AssertNoOverlap(
	ctx context.Context,
	teacherProfileID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"teacher_profile_id = ? AND status IN ? AND starts_at < ? AND ends_at > ?",
			teacherProfileID, domain.ActiveStatuses(), end, start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		// Dos transacciones pueden pasar la re-validación a la vez;
		// la constraint de unicidad/solape decide quién gana.
		if isConstraintViolation(err) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return err
	}
	return nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// 23505 = unique_violation, 23P01 = exclusion_violation
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
