package scheduling

import (
	"context"
	"time"

	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

// notifyAppointment arma destinatarios (docente + representante + admins
// activos, deduplicados preservando orden) y despacha vía outbox.
func notifyAppointment(
	ctx context.Context,
	r domain.Repository,
	outbox *notify.Outbox,
	loc *time.Location,
	ap *models.Appointment,
	subject string,
	templateKey string,
	extra map[string]string,
) {
	teacher, err := r.GetTeacherProfile(ctx, ap.TeacherProfileID)
	if err != nil {
		return
	}
	rep, err := r.GetUserByID(ctx, ap.RepresentativeID)
	if err != nil {
		return
	}
	admins, err := r.ListActiveAdminEmails(ctx)
	if err != nil {
		return
	}

	recipients := notify.UniqueEmails(append(
		[]string{teacher.User.Email, rep.Email}, admins...,
	))

	data := map[string]string{
		"docente":            teacher.User.Name,
		"representante":      rep.Name,
		"inicio":             ap.StartsAt.In(loc).Format("2006-01-02 15:04"),
		"motivo_cancelacion": ap.CancelReason,
	}
	for k, v := range extra {
		data[k] = v
	}

	outbox.Dispatch(notify.Message{
		Subject:     subject,
		TemplateKey: templateKey,
		Context:     data,
		Recipients:  recipients,
	})
}
