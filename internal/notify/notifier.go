package notify

// ===============================
// Contrato de notificación
// ===============================

// Message es una intención de notificación ya resuelta: asunto, plantilla,
// contexto y destinatarios deduplicados.
type Message struct {
	ID          string
	Subject     string
	TemplateKey string
	Context     map[string]string
	Recipients  []string
}

// Sender entrega el mensaje (versión rica + texto plano). Con lista de
// destinatarios vacía no hace nada.
type Sender interface {
	Send(msg Message) error
}

// UniqueEmails quita vacíos y duplicados preservando el orden.
func UniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
