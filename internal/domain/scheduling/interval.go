package scheduling

import (
	"sort"
	"time"
)

// ===============================
// Álgebra de intervalos
// ===============================
//
// Intervalos cerrados-abiertos [Start, End) sobre instantes absolutos.
// End <= Start se trata como intervalo vacío, nunca como error.

type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Empty() bool {
	return !iv.End.After(iv.Start)
}

func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Merge ordena por inicio y funde solapes y adyacencias en una secuencia
// mínima, ordenada y sin solapes. Merge(Merge(x)) == Merge(x).
func Merge(ivs []Interval) []Interval {
	xs := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.Empty() {
			xs = append(xs, iv)
		}
	}
	if len(xs) == 0 {
		return nil
	}

	sort.Slice(xs, func(i, j int) bool { return xs[i].Start.Before(xs[j].Start) })

	res := []Interval{xs[0]}
	for _, iv := range xs[1:] {
		last := &res[len(res)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
		} else {
			res = append(res, iv)
		}
	}
	return res
}

// Subtract quita de cada intervalo de a las porciones cubiertas por b (A−B).
// b debe venir fusionado (salida de Merge). Conserva el orden de a y
// descarta restos de longitud cero.
func Subtract(a, b []Interval) []Interval {
	var res []Interval
	for _, iv := range a {
		if iv.Empty() {
			continue
		}
		cur := iv.Start
		for _, cut := range b {
			if !cut.End.After(cur) || !iv.End.After(cut.Start) {
				continue
			}
			if cut.Start.After(cur) {
				res = append(res, Interval{Start: cur, End: cut.Start})
			}
			if cut.End.After(cur) {
				cur = cut.End
			}
			if !iv.End.After(cur) {
				break
			}
		}
		if iv.End.After(cur) {
			res = append(res, Interval{Start: cur, End: iv.End})
		}
	}
	return res
}

// AlignUp redondea el inicio de cada intervalo hacia arriba al siguiente
// múltiplo de blockMinutes (minutos desde medianoche en loc) y pone en cero
// los segundos. Los intervalos que quedan invertidos se descartan.
func AlignUp(ivs []Interval, blockMinutes int, loc *time.Location) []Interval {
	if blockMinutes <= 0 {
		return nil
	}
	var res []Interval
	for _, iv := range ivs {
		s := iv.Start.In(loc)
		mins := s.Hour()*60 + s.Minute()
		rest := mins % blockMinutes
		if rest != 0 || s.Second() != 0 || s.Nanosecond() != 0 {
			s = time.Date(s.Year(), s.Month(), s.Day(), s.Hour(), s.Minute(), 0, 0, loc)
			if rest != 0 {
				s = s.Add(time.Duration(blockMinutes-rest) * time.Minute)
			}
		}
		if s.Before(iv.End) {
			res = append(res, Interval{Start: s, End: iv.End})
		}
	}
	return res
}

// SplitIntoBlocks emite los inicios sucesivos t, t+bloque, t+2*bloque, ...
// mientras t+bloque <= End. Determinista y sin efectos.
func SplitIntoBlocks(ivs []Interval, blockMinutes int) []time.Time {
	if blockMinutes <= 0 {
		return nil
	}
	block := time.Duration(blockMinutes) * time.Minute

	var starts []time.Time
	for _, iv := range ivs {
		for t := iv.Start; !t.Add(block).After(iv.End); t = t.Add(block) {
			starts = append(starts, t)
		}
	}
	return starts
}
