// Package menu normaliza las claves de día que llegan con tildes o mayúsculas
// ("Miércoles", "MIERCOLES") a la clave canónica entity.Weekday.
package menu

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

var displayNames = map[entity.Weekday]string{
	entity.Lunes:     "Lunes",
	entity.Martes:    "Martes",
	entity.Miercoles: "Miércoles",
	entity.Jueves:    "Jueves",
	entity.Viernes:   "Viernes",
	entity.Sabado:    "Sábado",
	entity.Domingo:   "Domingo",
}

// NormalizeDayKey quita diacríticos (NFD + remoción de marcas) y pasa a minúsculas.
func NormalizeDayKey(s string) string {
	// transform.Chain guarda estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// ParseWeekday devuelve el día canónico de s. Los nombres en inglés no se reconocen.
func ParseWeekday(s string) (entity.Weekday, bool) {
	d := entity.Weekday(NormalizeDayKey(s))
	if !d.Valid() {
		return "", false
	}
	return d, true
}

// AreDaysEqual compara dos nombres de día con la misma regla de normalización.
func AreDaysEqual(a, b string) bool {
	return NormalizeDayKey(a) == NormalizeDayKey(b)
}

// FormatDayName nombre para mostrar ("miercoles" -> "Miércoles").
// Si la clave no es un día reconocido se devuelve sin cambios.
func FormatDayName(key string) string {
	if d, ok := ParseWeekday(key); ok {
		return displayNames[d]
	}
	return key
}

// NormalizeDays reconcilia un objeto por día con claves arbitrarias en los siete días canónicos.
// Si un mismo día llega con varias claves gana la primera lista de platos no vacía; las claves
// se recorren con la ortografía canónica primero y después en orden lexicográfico.
// Los días ausentes quedan con Items vacío (nunca nil).
func NormalizeDays(raw map[string]entity.DayMenu) map[entity.Weekday]entity.DayMenu {
	out := make(map[entity.Weekday]entity.DayMenu, len(entity.Weekdays))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := entity.Weekday(keys[i]).Valid(), entity.Weekday(keys[j]).Valid()
		if ci != cj {
			return ci
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		d, ok := ParseWeekday(k)
		if !ok {
			continue
		}
		cur, seen := out[d]
		if seen && len(cur.Items) > 0 {
			continue
		}
		if !seen || len(raw[k].Items) > 0 {
			out[d] = entity.DayMenu{Items: cloneItems(raw[k].Items)}
		}
	}
	for _, d := range entity.Weekdays {
		if _, ok := out[d]; !ok {
			out[d] = entity.DayMenu{Items: []entity.MenuItem{}}
		}
	}
	return out
}

// CanonicalDays completa un mapa ya tipado con los días faltantes y descarta claves no canónicas.
func CanonicalDays(days map[entity.Weekday]entity.DayMenu) map[entity.Weekday]entity.DayMenu {
	raw := make(map[string]entity.DayMenu, len(days))
	for k, v := range days {
		raw[string(k)] = v
	}
	return NormalizeDays(raw)
}

// ParseDays normaliza una lista de nombres de día: sin duplicados y en orden lunes a domingo.
// Los nombres no reconocidos se devuelven en invalid.
func ParseDays(raw []string) (days []entity.Weekday, invalid []string) {
	var seen [len(entity.Weekdays)]bool
	for _, s := range raw {
		d, ok := ParseWeekday(s)
		if !ok {
			invalid = append(invalid, s)
			continue
		}
		seen[d.Index()] = true
	}
	days = []entity.Weekday{}
	for i, d := range entity.Weekdays {
		if seen[i] {
			days = append(days, d)
		}
	}
	return days, invalid
}

// MissingDays días confirmables sin ningún plato; vacío si el menú está completo.
func MissingDays(m *entity.WeeklyMenu, workingDays int) []entity.Weekday {
	var missing []entity.Weekday
	for _, d := range entity.ConfirmableDays(workingDays) {
		if len(m.Days[d].Items) == 0 {
			missing = append(missing, d)
		}
	}
	return missing
}

func cloneItems(items []entity.MenuItem) []entity.MenuItem {
	out := make([]entity.MenuItem, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		it.Description = strings.TrimSpace(it.Description)
		out = append(out, it)
	}
	return out
}
