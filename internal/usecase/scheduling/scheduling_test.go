package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/audit"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

// ======================================================
// FIXTURES
// ======================================================

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Guayaquil")
	if err != nil {
		panic(err)
	}
	return loc
}()

const (
	teacherUserID    = uint(10)
	teacherProfileID = uint(1)
	repUserID        = uint(7)
	otherRepUserID   = uint(8)
)

// mon arma un instante del lunes 2 de marzo de 2026.
func mon(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, testLoc)
}

// ======================================================
// FAKE REPOSITORY (en memoria)
// ======================================================

type fakeRepo struct {
	mu sync.Mutex

	users        map[uint]models.User
	teachers     map[uint]models.TeacherProfile
	weekly       []models.WeeklyAvailability
	exceptions   []models.DateException
	appointments map[uint]models.Appointment
	adminEmails  []string

	nextID uint
}

// newFixture arma el escenario base: un docente con bloque de 20 minutos y
// disponibilidad semanal el lunes de 08:00 a 10:00.
func newFixture() *fakeRepo {
	f := &fakeRepo{
		users:        make(map[uint]models.User),
		teachers:     make(map[uint]models.TeacherProfile),
		appointments: make(map[uint]models.Appointment),
		adminEmails:  []string{"admin@institucion.edu.ec"},
		nextID:       100,
	}

	f.users[teacherUserID] = models.User{
		ID: teacherUserID, Name: "Marta Rodríguez",
		Email: "mrodriguez@institucion.edu.ec",
		Role:  models.RoleTeacher, Active: true,
	}
	f.users[repUserID] = models.User{
		ID: repUserID, Name: "Carlos Paz",
		Email: "cpaz@mail.com",
		Role:  models.RoleRepresentative, Active: true,
	}
	f.users[otherRepUserID] = models.User{
		ID: otherRepUserID, Name: "Lucía Vera",
		Email: "lvera@mail.com",
		Role:  models.RoleRepresentative, Active: true,
	}

	f.teachers[teacherProfileID] = models.TeacherProfile{
		ID: teacherProfileID, UserID: teacherUserID,
		User:         f.users[teacherUserID],
		BlockMinutes: 20, Active: true,
	}

	f.weekly = []models.WeeklyAvailability{
		{ID: 1, TeacherProfileID: teacherProfileID, Weekday: 0, StartTime: "08:00", EndTime: "10:00"},
	}

	return f
}

func (f *fakeRepo) addAppointment(ap models.Appointment) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	if ap.Status == "" {
		ap.Status = string(domain.StatusPending)
	}
	f.appointments[ap.ID] = ap
	return ap.ID
}

// ======================================================
// domain.Repository
// ======================================================

func (f *fakeRepo) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (f *fakeRepo) ListActiveAdminEmails(ctx context.Context) ([]string, error) {
	return f.adminEmails, nil
}

func (f *fakeRepo) GetTeacherProfile(ctx context.Context, id uint) (*models.TeacherProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.teachers[id]
	if !ok {
		return nil, errors.New("teacher profile not found")
	}
	return &p, nil
}

func (f *fakeRepo) GetTeacherProfileByUser(ctx context.Context, userID uint) (*models.TeacherProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.teachers {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, errors.New("teacher profile not found")
}

func (f *fakeRepo) ListWeeklyAvailability(ctx context.Context, teacherID uint, weekday int) ([]models.WeeklyAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WeeklyAvailability
	for _, w := range f.weekly {
		if w.TeacherProfileID == teacherID && w.Weekday == weekday {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDateExceptions(ctx context.Context, teacherID uint, date time.Time, kind models.ExceptionKind) ([]models.DateException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := date.In(testLoc).Format("2006-01-02")
	var out []models.DateException
	for _, ex := range f.exceptions {
		if ex.TeacherProfileID == teacherID && ex.Kind == kind &&
			ex.Date.In(testLoc).Format("2006-01-02") == day {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (f *fakeRepo) ListTeacherAppointmentsBetween(ctx context.Context, teacherID uint, start, end time.Time, statuses []string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TeacherProfileID != teacherID {
			continue
		}
		if ap.StartsAt.Before(start) || !ap.StartsAt.Before(end) {
			continue
		}
		for _, st := range statuses {
			if ap.Status == st {
				out = append(out, ap)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) CountTeacherActiveAppointments(ctx context.Context, teacherID uint, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, ap := range f.appointments {
		if ap.TeacherProfileID == teacherID &&
			domain.Status(ap.Status).Active() &&
			!ap.StartsAt.Before(start) && ap.StartsAt.Before(end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountRepresentativeActiveAppointments(ctx context.Context, repID uint, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, ap := range f.appointments {
		if ap.RepresentativeID == repID &&
			domain.Status(ap.Status).Active() &&
			!ap.StartsAt.Before(start) && ap.StartsAt.Before(end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) AssertNoOverlap(ctx context.Context, teacherID uint, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.TeacherProfileID == teacherID &&
			domain.Status(ap.Status).Active() &&
			start.Before(ap.EndsAt) && end.After(ap.StartsAt) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	return nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// emula la constraint de exclusión de la base
	for _, other := range f.appointments {
		if other.TeacherProfileID == ap.TeacherProfileID &&
			domain.Status(other.Status).Active() &&
			ap.StartsAt.Before(other.EndsAt) && ap.EndsAt.After(other.StartsAt) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[ap.ID]; !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	f.appointments[ap.ID] = *ap
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// AUDIT / NOTIFY de prueba
// ======================================================

type noopRecorder struct{}

func (noopRecorder) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopRecorder{})
}

// captureSender entrega los mensajes a un canal para poder esperarlos.
type captureSender struct {
	ch chan notify.Message
}

func newCaptureSender() *captureSender {
	return &captureSender{ch: make(chan notify.Message, 10)}
}

func (s *captureSender) Send(msg notify.Message) error {
	s.ch <- msg
	return nil
}

func (s *captureSender) wait(timeout time.Duration) (notify.Message, bool) {
	select {
	case msg := <-s.ch:
		return msg, true
	case <-time.After(timeout):
		return notify.Message{}, false
	}
}
