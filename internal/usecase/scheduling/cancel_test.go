package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndinoServices/turnos-scheduler/internal/clock"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

func pendingAppointment(repo *fakeRepo) uint {
	return repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: repUserID,
		StartsAt:         mon(9, 0),
		EndsAt:           mon(9, 20),
		Status:           string(domain.StatusPending),
	})
}

func repCancelUC(repo *fakeRepo, now time.Time) *CancelByRepresentative {
	return NewCancelByRepresentative(
		repo, clock.FixedAt(now), testLoc,
		notify.NewOutbox(newCaptureSender()), testDispatcher(),
		24*time.Hour,
	)
}

// ======================================================
// REPRESENTANTE
// ======================================================

func TestCancelByRepresentativeSuccess(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	cancelled, err := repCancelUC(repo, farBefore).Execute(context.Background(), id, repUserID, "viaje familiar")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Equal(t, "viaje familiar", cancelled.CancelReason)
	require.NotNil(t, cancelled.CancelledByID)
	assert.Equal(t, repUserID, *cancelled.CancelledByID)

	stored, err := repo.GetAppointment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}

func TestCancelByRepresentativeTooLate(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	// 10 horas antes del inicio: dentro de la ventana de antelación
	now := mon(9, 0).Add(-10 * time.Hour)
	_, err := repCancelUC(repo, now).Execute(context.Background(), id, repUserID, "")
	assert.True(t, httperr.IsBusiness(err, "lead_time_violation"))

	stored, err := repo.GetAppointment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestCancelByRepresentativeNotOwner(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	_, err := repCancelUC(repo, farBefore).Execute(context.Background(), id, otherRepUserID, "")
	assert.True(t, httperr.IsBusiness(err, "representative_mismatch"))
}

func TestCancelByRepresentativeNotFound(t *testing.T) {
	repo := newFixture()

	_, err := repCancelUC(repo, farBefore).Execute(context.Background(), 999, repUserID, "")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCancelByRepresentativeAlreadyCancelled(t *testing.T) {
	repo := newFixture()
	id := repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: repUserID,
		StartsAt:         mon(9, 0),
		EndsAt:           mon(9, 20),
		Status:           string(domain.StatusCancelled),
	})

	_, err := repCancelUC(repo, farBefore).Execute(context.Background(), id, repUserID, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// ======================================================
// DOCENTE
// ======================================================

func teacherCancelUC(repo *fakeRepo) *CancelByTeacher {
	return NewCancelByTeacher(repo, testLoc, notify.NewOutbox(newCaptureSender()), testDispatcher())
}

func TestCancelByTeacherSuccessIgnoresLeadTime(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	// el docente puede cancelar aun sobre la hora
	cancelled, err := teacherCancelUC(repo).Execute(context.Background(), id, teacherUserID, "calamidad doméstica")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
}

func TestCancelByTeacherWrongTeacher(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	// usuario sin perfil docente
	_, err := teacherCancelUC(repo).Execute(context.Background(), id, repUserID, "")
	assert.True(t, httperr.IsBusiness(err, "teacher_mismatch"))
}

func TestCancelByTeacherOtherTeachersAppointment(t *testing.T) {
	repo := newFixture()

	otherTeacherUser := uint(11)
	repo.users[otherTeacherUser] = models.User{
		ID: otherTeacherUser, Name: "Otro Docente",
		Email: "otro@institucion.edu.ec", Role: models.RoleTeacher, Active: true,
	}
	repo.teachers[2] = models.TeacherProfile{
		ID: 2, UserID: otherTeacherUser, User: repo.users[otherTeacherUser],
		BlockMinutes: 20, Active: true,
	}

	id := pendingAppointment(repo)

	_, err := teacherCancelUC(repo).Execute(context.Background(), id, otherTeacherUser, "")
	assert.True(t, httperr.IsBusiness(err, "teacher_mismatch"))
}

// ======================================================
// ADMINISTRACIÓN
// ======================================================

func adminCancelUC(repo *fakeRepo) *CancelByAdmin {
	return NewCancelByAdmin(repo, testLoc, notify.NewOutbox(newCaptureSender()), testDispatcher())
}

func TestCancelByAdminSuccess(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	adminID := uint(99)
	cancelled, err := adminCancelUC(repo).Execute(context.Background(), id, adminID, "suspensión de clases")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledByID)
	assert.Equal(t, adminID, *cancelled.CancelledByID)
}

func TestCancelByAdminInvalidState(t *testing.T) {
	repo := newFixture()
	id := pendingAppointment(repo)

	_, err := adminCancelUC(repo).Execute(context.Background(), id, 99, "")
	require.NoError(t, err)

	_, err = adminCancelUC(repo).Execute(context.Background(), id, 99, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
