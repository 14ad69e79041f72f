// Package confirmation contiene la lógica pura del comedor: el estado de la ventana de
// confirmación y el resumen de confirmaciones por empleado y día.
package confirmation

import (
	"time"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/pkg/dates"
)

// WindowState resultado de evaluar la ventana de confirmación.
type WindowState string

const (
	WindowOpen       WindowState = "OPEN"
	WindowNotYetOpen WindowState = "NOT_YET_OPEN"
	WindowClosed     WindowState = "CLOSED"
	WindowUndefined  WindowState = "UNDEFINED"
)

// Window intervalo [Start, End] con ambos extremos incluidos.
type Window struct {
	Start time.Time
	End   time.Time
}

// Evaluate decide el estado de la ventana en now. Sin alguno de los extremos es UNDEFINED.
func Evaluate(now time.Time, start, end *time.Time) WindowState {
	if start == nil || end == nil {
		return WindowUndefined
	}
	switch {
	case now.Before(*start):
		return WindowNotYetOpen
	case now.After(*end):
		return WindowClosed
	default:
		return WindowOpen
	}
}

// Evaluator evalúa la ventana de un menú. La implementación de desarrollo solo se compila
// con el tag devtools (ver cmd/api).
type Evaluator interface {
	Evaluate(now time.Time, start, end *time.Time) WindowState
}

// StrictEvaluator aplica Evaluate sin excepciones.
type StrictEvaluator struct{}

func (StrictEvaluator) Evaluate(now time.Time, start, end *time.Time) WindowState {
	return Evaluate(now, start, end)
}

// OverrideSpan mitad de la ventana sintética de desarrollo.
const OverrideSpan = 3 * 24 * time.Hour

// OverrideEvaluator sustituye la ventana ausente por [now-3d, now+3d]. Solo para builds de desarrollo.
type OverrideEvaluator struct{}

func (OverrideEvaluator) Evaluate(now time.Time, start, end *time.Time) WindowState {
	if start == nil || end == nil {
		s, e := now.Add(-OverrideSpan), now.Add(OverrideSpan)
		return Evaluate(now, &s, &e)
	}
	return Evaluate(now, start, end)
}

// DefaultWindow ventana por defecto de la semana que empieza en monday: por defecto desde el
// jueves anterior 16:10 hasta el sábado anterior 10:00, en la zona horaria de monday.
func DefaultWindow(monday time.Time, s entity.Settings) Window {
	monday = dates.GetMonday(monday)
	return Window{
		Start: dates.AtClock(monday.AddDate(0, 0, -s.WindowStartOffsetDays), s.WindowStartHour, s.WindowStartMinute),
		End:   dates.AtClock(monday.AddDate(0, 0, -s.WindowEndOffsetDays), s.WindowEndHour, s.WindowEndMinute),
	}
}

// Editable indica si con ese estado se permite guardar confirmaciones.
func (s WindowState) Editable() bool { return s == WindowOpen }
