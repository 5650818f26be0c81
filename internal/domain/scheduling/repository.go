package scheduling

import (
	"context"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// Repository es el contrato de persistencia del núcleo de agenda.
// Las lecturas son snapshots point-in-time; el respaldo definitivo contra
// dobles reservas son las constraints de la base al commit.
type Repository interface {
	// Transact ejecuta fn dentro de una transacción; el Repository que
	// recibe fn opera sobre esa transacción.
	Transact(ctx context.Context, fn func(Repository) error) error

	// -------- Identidad --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	ListActiveAdminEmails(
		ctx context.Context,
	) ([]string, error)

	// -------- Perfil docente --------
	GetTeacherProfile(
		ctx context.Context,
		id uint,
	) (*models.TeacherProfile, error)

	GetTeacherProfileByUser(
		ctx context.Context,
		userID uint,
	) (*models.TeacherProfile, error)

	// -------- Disponibilidad --------
	ListWeeklyAvailability(
		ctx context.Context,
		teacherProfileID uint,
		weekday int,
	) ([]models.WeeklyAvailability, error)

	ListDateExceptions(
		ctx context.Context,
		teacherProfileID uint,
		date time.Time,
		kind models.ExceptionKind,
	) ([]models.DateException, error)

	// -------- Citas (lectura) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListTeacherAppointmentsBetween(
		ctx context.Context,
		teacherProfileID uint,
		start time.Time,
		end time.Time,
		statuses []string,
	) ([]models.Appointment, error)

	CountTeacherActiveAppointments(
		ctx context.Context,
		teacherProfileID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	CountRepresentativeActiveAppointments(
		ctx context.Context,
		representativeID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	// -------- Citas (escritura) --------
	AssertNoOverlap(
		ctx context.Context,
		teacherProfileID uint,
		start time.Time,
		end time.Time,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
