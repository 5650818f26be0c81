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

func bookUC(repo *fakeRepo, now time.Time, sender notify.Sender) *BookAppointment {
	if sender == nil {
		sender = newCaptureSender()
	}
	return NewBookAppointment(
		repo, clock.FixedAt(now), testLoc,
		notify.NewOutbox(sender), testDispatcher(),
		24*time.Hour, 1, 2,
	)
}

func bookInput(start time.Time) BookInput {
	return BookInput{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: repUserID,
		StudentCourse:    "8vo A",
		StudentName:      "Ana Paz",
		Reason:           "Seguimiento académico",
		Start:            start,
	}
}

func TestBookAppointmentSuccess(t *testing.T) {
	repo := newFixture()

	created, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 20)))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), created.Status)
	assert.Equal(t, mon(8, 20), created.StartsAt)
	assert.Equal(t, mon(8, 40), created.EndsAt)
	assert.NotZero(t, created.ID)

	stored, err := repo.GetAppointment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, repUserID, stored.RepresentativeID)
}

func TestBookAppointmentNotifiesAfterCommit(t *testing.T) {
	repo := newFixture()
	sender := newCaptureSender()

	_, err := bookUC(repo, farBefore, sender).Execute(context.Background(), bookInput(mon(8, 0)))
	require.NoError(t, err)

	msg, ok := sender.wait(2 * time.Second)
	require.True(t, ok, "esperaba una notificación")

	assert.Equal(t, "cita_creada", msg.TemplateKey)
	assert.Equal(t, []string{
		"mrodriguez@institucion.edu.ec",
		"cpaz@mail.com",
		"admin@institucion.edu.ec",
	}, msg.Recipients)
	assert.Equal(t, "Marta Rodríguez", msg.Context["docente"])
}

func TestBookAppointmentLeadTimeViolation(t *testing.T) {
	repo := newFixture()

	// 23 horas antes del inicio
	now := mon(8, 20).Add(-23 * time.Hour)
	_, err := bookUC(repo, now, nil).Execute(context.Background(), bookInput(mon(8, 20)))
	assert.True(t, httperr.IsBusiness(err, "lead_time_violation"))
}

func TestBookAppointmentSlotNotOffered(t *testing.T) {
	repo := newFixture()

	// 08:10 no es un inicio de la grilla
	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 10)))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestBookAppointmentOutsideAvailability(t *testing.T) {
	repo := newFixture()

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(11, 0)))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestBookAppointmentDoubleBookingLoses(t *testing.T) {
	repo := newFixture()
	uc := bookUC(repo, farBefore, nil)

	first := bookInput(mon(8, 20))
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := bookInput(mon(8, 20))
	second.RepresentativeID = otherRepUserID
	_, err = uc.Execute(context.Background(), second)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestBookAppointmentDailyQuota(t *testing.T) {
	repo := newFixture()
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: repUserID,
		StartsAt:         mon(9, 0),
		EndsAt:           mon(9, 20),
	})

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	assert.True(t, httperr.IsBusiness(err, "daily_quota_exceeded"))
}

func TestBookAppointmentCancelledDoesNotCountForQuota(t *testing.T) {
	repo := newFixture()
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: repUserID,
		StartsAt:         mon(9, 0),
		EndsAt:           mon(9, 20),
		Status:           string(domain.StatusCancelled),
	})

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(9, 0)))
	assert.NoError(t, err)
}

func TestBookAppointmentWeeklyQuota(t *testing.T) {
	repo := newFixture()

	// dos citas activas la misma semana, en otros días
	tue := mon(9, 0).AddDate(0, 0, 1)
	wed := mon(9, 0).AddDate(0, 0, 2)
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID, RepresentativeID: repUserID,
		StartsAt: tue, EndsAt: tue.Add(20 * time.Minute),
	})
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID, RepresentativeID: repUserID,
		StartsAt: wed, EndsAt: wed.Add(20 * time.Minute),
	})

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	assert.True(t, httperr.IsBusiness(err, "weekly_quota_exceeded"))
}

func TestBookAppointmentSecondInWeekAllowed(t *testing.T) {
	repo := newFixture()

	// una sola cita activa en la semana: todavía queda cupo para otra
	tue := mon(9, 0).AddDate(0, 0, 1)
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID, RepresentativeID: repUserID,
		StartsAt: tue, EndsAt: tue.Add(20 * time.Minute),
	})

	ap, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	require.NoError(t, err)
	assert.Equal(t, mon(8, 0), ap.StartsAt)
}

func TestBookAppointmentPreviousWeekDoesNotCount(t *testing.T) {
	repo := newFixture()

	prevWed := mon(9, 0).AddDate(0, 0, -5)
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID, RepresentativeID: repUserID,
		StartsAt: prevWed, EndsAt: prevWed.Add(20 * time.Minute),
	})
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID, RepresentativeID: repUserID,
		StartsAt: prevWed.Add(time.Hour), EndsAt: prevWed.Add(80 * time.Minute),
	})

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	assert.NoError(t, err)
}

func TestBookAppointmentTeacherDailyCap(t *testing.T) {
	repo := newFixture()
	capOne := 1
	p := repo.teachers[teacherProfileID]
	p.MaxDailyAppointments = &capOne
	repo.teachers[teacherProfileID] = p

	// otra familia ya tomó el único cupo del docente
	repo.addAppointment(models.Appointment{
		TeacherProfileID: teacherProfileID,
		RepresentativeID: otherRepUserID,
		StartsAt:         mon(9, 0),
		EndsAt:           mon(9, 20),
	})

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	assert.True(t, httperr.IsBusiness(err, "teacher_daily_cap_reached"))
}

func TestBookAppointmentInactiveTeacher(t *testing.T) {
	repo := newFixture()
	p := repo.teachers[teacherProfileID]
	p.Active = false
	repo.teachers[teacherProfileID] = p

	_, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(mon(8, 0)))
	assert.True(t, httperr.IsBusiness(err, "teacher_inactive"))
}

func TestBookAppointmentNormalizesSeconds(t *testing.T) {
	repo := newFixture()

	start := mon(8, 20).Add(30 * time.Second)
	created, err := bookUC(repo, farBefore, nil).Execute(context.Background(), bookInput(start))
	require.NoError(t, err)
	assert.Equal(t, mon(8, 20), created.StartsAt)
}
