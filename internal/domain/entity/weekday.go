package entity

// Weekday clave canónica de un día: nombre en español, minúsculas y sin tildes.
type Weekday string

const (
	Lunes     Weekday = "lunes"
	Martes    Weekday = "martes"
	Miercoles Weekday = "miercoles"
	Jueves    Weekday = "jueves"
	Viernes   Weekday = "viernes"
	Sabado    Weekday = "sabado"
	Domingo   Weekday = "domingo"
)

// Weekdays los siete días en orden canónico (lunes a domingo).
var Weekdays = [7]Weekday{Lunes, Martes, Miercoles, Jueves, Viernes, Sabado, Domingo}

// Index posición del día en la semana (lunes=0); -1 si la clave no es canónica.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid indica si d es una de las siete claves canónicas.
func (d Weekday) Valid() bool { return d.Index() >= 0 }

// Política de días laborables.
const (
	WorkingDaysShort = 5
	WorkingDaysFull  = 7
)

// ConfirmableDays días confirmables para la política dada. Cualquier valor distinto de 7 cae a 5.
func ConfirmableDays(workingDays int) []Weekday {
	if workingDays == WorkingDaysFull {
		return Weekdays[:]
	}
	return Weekdays[:WorkingDaysShort]
}

// IsConfirmable indica si d cae dentro de la política de días laborables.
func IsConfirmable(d Weekday, workingDays int) bool {
	i := d.Index()
	if i < 0 {
		return false
	}
	if workingDays == WorkingDaysFull {
		return true
	}
	return i < WorkingDaysShort
}
