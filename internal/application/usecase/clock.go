package usecase

import (
	"time"

	"github.com/jhoicas/Comedor-api/pkg/dates"
)

// Clock hora actual y zona horaria del comedor; las semanas y ventanas se calculan en Loc.
type Clock struct {
	Loc   *time.Location
	NowFn func() time.Time
}

// SystemClock reloj del sistema en loc (UTC si es nil).
func SystemClock(loc *time.Location) Clock {
	return Clock{Loc: loc, NowFn: time.Now}
}

// Now hora actual en la zona del comedor.
func (c Clock) Now() time.Time {
	now := time.Now
	if c.NowFn != nil {
		now = c.NowFn
	}
	return now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

// CurrentWeek clave de la semana en curso.
func (c Clock) CurrentWeek() string {
	return dates.WeekID(c.Now())
}

// Monday valida la clave de semana y devuelve su lunes en la zona del comedor.
func (c Clock) Monday(weekID string) (time.Time, error) {
	return dates.ParseWeekID(weekID, c.location())
}
