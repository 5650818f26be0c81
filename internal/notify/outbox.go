package notify

import (
	"log"

	"github.com/google/uuid"
)

// Outbox despacha notificaciones después del commit, fuera de la
// transacción: una falla de envío jamás revierte una reserva ya confirmada.
type Outbox struct {
	sender Sender
	queue  chan Message
}

func NewOutbox(sender Sender) *Outbox {
	o := &Outbox{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go o.worker()
	return o
}

func (o *Outbox) worker() {
	for msg := range o.queue {
		if err := o.sender.Send(msg); err != nil {
			log.Println("notify error:", msg.ID, err)
		}
	}
}

func (o *Outbox) Dispatch(msg Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	select {
	case o.queue <- msg:
	default:
		// fila llena: descartamos la notificación, nunca bloqueamos la API
		log.Println("notify queue full, dropping message", msg.ID)
	}
}
