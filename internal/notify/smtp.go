package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"regexp"
	"strings"
)

// SMTPSender entrega cada mensaje como multipart/alternative: versión HTML
// renderizada por plantilla y versión texto derivada de ella.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

func (s *SMTPSender) Send(msg Message) error {
	recipients := UniqueEmails(msg.Recipients)
	if len(recipients) == 0 {
		return nil
	}

	tpl, ok := templates[msg.TemplateKey]
	if !ok {
		return fmt.Errorf("unknown template %q", msg.TemplateKey)
	}

	var html bytes.Buffer
	if err := tpl.Execute(&html, msg.Context); err != nil {
		return fmt.Errorf("render %q: %w", msg.TemplateKey, err)
	}
	text := stripTags(html.String())

	body := buildAlternative(s.from, recipients, msg.Subject, text, html.String())
	return smtp.SendMail(s.addr, nil, s.from, recipients, body)
}

const boundary = "=_turnos_alt"

func buildAlternative(from string, to []string, subject, text, html string) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	fmt.Fprintf(&b, "Content-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", text)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	fmt.Fprintf(&b, "Content-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", html)

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(html string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(html, ""))
}

// ===============================
// Plantillas
// ===============================

var templates = map[string]*template.Template{
	"cita_creada": template.Must(template.New("cita_creada").Parse(`
<p>Se registró una nueva cita.</p>
<p>Docente: {{.docente}}<br>
Representante: {{.representante}}<br>
Inicio: {{.inicio}}<br>
Motivo: {{.motivo}}<br>
Estado: {{.estado}}</p>`)),

	"cita_confirmada": template.Must(template.New("cita_confirmada").Parse(`
<p>La cita fue confirmada por el docente.</p>
<p>Docente: {{.docente}}<br>
Representante: {{.representante}}<br>
Inicio: {{.inicio}}</p>`)),

	"cita_cancelada": template.Must(template.New("cita_cancelada").Parse(`
<p>La cita fue cancelada.</p>
<p>Docente: {{.docente}}<br>
Representante: {{.representante}}<br>
Inicio: {{.inicio}}<br>
Motivo de cancelación: {{.motivo_cancelacion}}</p>`)),
}
