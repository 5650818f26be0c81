package clock

import "time"

// Clock abstrae "ahora" para que resolvers, generador de slots y
// transacciones sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed devuelve siempre el mismo instante.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

func FixedAt(t time.Time) Fixed { return Fixed(t) }
