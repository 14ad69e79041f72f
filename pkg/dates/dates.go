// Package dates agrupa el manejo de fechas del comedor: semanas que empiezan en lunes,
// claves de semana YYYY-MM-DD y el formato de pantalla DD/MM/YYYY.
package dates

import (
	"fmt"
	"time"
)

const (
	// LayoutISO formato canónico de las claves de semana y fechas en documentos.
	LayoutISO = "2006-01-02"
	// LayoutDisplay formato que ven los usuarios.
	LayoutDisplay = "02/01/2006"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// GetMonday devuelve el lunes (00:00, misma zona horaria) de la semana ISO que contiene t.
// El domingo pertenece a la semana del lunes anterior.
func GetMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // lunes=0 ... domingo=6
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate devuelve la fecha en formato YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(LayoutISO)
}

// ParseDate interpreta YYYY-MM-DD en la zona indicada (UTC si loc es nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(LayoutISO, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDateDisplay devuelve la fecha en formato DD/MM/YYYY.
func FormatDateDisplay(t time.Time) string {
	return t.Format(LayoutDisplay)
}

// ParseDisplayDate interpreta DD/MM/YYYY (día y mes con dos dígitos).
func ParseDisplayDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(LayoutDisplay, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera DD/MM/YYYY", s)
	}
	return t, nil
}

// WeekID devuelve la clave de la semana que contiene t (su lunes en YYYY-MM-DD).
func WeekID(t time.Time) string {
	return FormatDate(GetMonday(t))
}

// ParseWeekID valida que la clave sea un lunes y devuelve esa fecha a las 00:00.
func ParseWeekID(weekID string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(weekID, loc)
	if err != nil {
		return time.Time{}, err
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("la semana %q no empieza en lunes", weekID)
	}
	return t, nil
}

// WeekLabel etiqueta legible de una semana, ej: "Semana del 19 de octubre de 2026".
func WeekLabel(monday time.Time) string {
	return fmt.Sprintf("Semana del %d de %s de %d", monday.Day(), monthNames[monday.Month()-1], monday.Year())
}

// AtClock devuelve el día de d a la hora y minuto indicados, en la zona de d.
func AtClock(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

// ParseClock interpreta HH:MM.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("hora inválida %q: se espera HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
