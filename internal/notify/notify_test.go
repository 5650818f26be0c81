package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueEmails(t *testing.T) {
	got := UniqueEmails([]string{
		"docente@inst.edu.ec",
		"",
		"rep@mail.com",
		"docente@inst.edu.ec",
		"admin@inst.edu.ec",
		"rep@mail.com",
	})

	assert.Equal(t, []string{
		"docente@inst.edu.ec",
		"rep@mail.com",
		"admin@inst.edu.ec",
	}, got)
}

func TestUniqueEmailsEmpty(t *testing.T) {
	assert.Empty(t, UniqueEmails(nil))
	assert.Empty(t, UniqueEmails([]string{"", ""}))
}

func TestTemplatesRender(t *testing.T) {
	ctx := map[string]string{
		"docente":            "Marta Rodríguez",
		"representante":      "Carlos Paz",
		"inicio":             "2026-03-02 08:20",
		"motivo":             "Seguimiento",
		"estado":             "PENDIENTE",
		"motivo_cancelacion": "viaje",
	}

	for key, tpl := range templates {
		var buf bytes.Buffer
		require.NoError(t, tpl.Execute(&buf, ctx), "plantilla %s", key)
		assert.Contains(t, buf.String(), "Marta Rodríguez", "plantilla %s", key)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<p>Hola <b>mundo</b></p>\n")
	assert.Equal(t, "Hola mundo", got)
}

func TestBuildAlternative(t *testing.T) {
	body := string(buildAlternative(
		"no-reply@inst.edu.ec",
		[]string{"a@mail.com", "b@mail.com"},
		"Nueva cita",
		"texto plano",
		"<p>html</p>",
	))

	assert.True(t, strings.HasPrefix(body, "From: no-reply@inst.edu.ec\r\n"))
	assert.Contains(t, body, "To: a@mail.com, b@mail.com\r\n")
	assert.Contains(t, body, "Subject: Nueva cita\r\n")
	assert.Contains(t, body, "multipart/alternative")
	assert.Contains(t, body, "texto plano")
	assert.Contains(t, body, "<p>html</p>")
	assert.True(t, strings.HasSuffix(body, "--"+boundary+"--\r\n"))
}

func TestSMTPSenderNoRecipientsIsNoop(t *testing.T) {
	s := NewSMTPSender("localhost:25", "no-reply@inst.edu.ec")
	err := s.Send(Message{TemplateKey: "cita_creada", Recipients: nil})
	assert.NoError(t, err)
}

func TestSMTPSenderUnknownTemplate(t *testing.T) {
	s := NewSMTPSender("localhost:25", "no-reply@inst.edu.ec")
	err := s.Send(Message{TemplateKey: "no_existe", Recipients: []string{"a@mail.com"}})
	assert.Error(t, err)
}

// ===============================
// Outbox
// ===============================

type chanSender struct {
	ch chan Message
}

func (s *chanSender) Send(msg Message) error {
	s.ch <- msg
	return nil
}

func TestOutboxAssignsIDAndDelivers(t *testing.T) {
	sender := &chanSender{ch: make(chan Message, 1)}
	outbox := NewOutbox(sender)

	outbox.Dispatch(Message{Subject: "test", TemplateKey: "cita_creada"})

	select {
	case msg := <-sender.ch:
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "test", msg.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("el outbox no entregó el mensaje")
	}
}

func TestOutboxKeepsExplicitID(t *testing.T) {
	sender := &chanSender{ch: make(chan Message, 1)}
	outbox := NewOutbox(sender)

	outbox.Dispatch(Message{ID: "fixed-id"})

	select {
	case msg := <-sender.ch:
		assert.Equal(t, "fixed-id", msg.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("el outbox no entregó el mensaje")
	}
}
