package confirmation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

// Summary resumen de confirmaciones de una semana para una sucursal.
type Summary struct {
	RosterSize         int                    `json:"roster_size"`
	WorkingDays        int                    `json:"working_days"`
	ConfirmedEmployees int                    `json:"confirmed_employees"`
	TotalSlots         int                    `json:"total_confirmed_slots"`
	PerDay             map[entity.Weekday]int `json:"per_day"`
	EstimatedSavings   decimal.Decimal        `json:"estimated_savings"`
}

// PerDayCount confirmaciones del día d.
func (s Summary) PerDayCount(d entity.Weekday) int { return s.PerDay[d] }

// Aggregate resume las confirmaciones. Solo cuentan los días canónicos dentro de la política
// de días laborables; los repetidos dentro de una misma entrada cuentan una vez y los
// desconocidos se ignoran. El ahorro estimado es
// (roster*workingDays - slots) * mealCost, nunca negativo.
func Aggregate(entries []entity.EmployeeDays, rosterSize, workingDays int, mealCost decimal.Decimal) Summary {
	if workingDays != entity.WorkingDaysFull {
		workingDays = entity.WorkingDaysShort
	}
	if rosterSize < 0 {
		rosterSize = 0
	}
	s := Summary{
		RosterSize:       rosterSize,
		WorkingDays:      workingDays,
		PerDay:           make(map[entity.Weekday]int, workingDays),
		EstimatedSavings: decimal.Zero,
	}
	for _, d := range entity.ConfirmableDays(workingDays) {
		s.PerDay[d] = 0
	}

	for _, e := range entries {
		var seen [len(entity.Weekdays)]bool
		n := 0
		for _, d := range e.Days {
			if !entity.IsConfirmable(d, workingDays) || seen[d.Index()] {
				continue
			}
			seen[d.Index()] = true
			s.PerDay[d]++
			n++
		}
		if n > 0 {
			s.ConfirmedEmployees++
		}
		s.TotalSlots += n
	}

	if rosterSize == 0 {
		return s
	}
	unconfirmed := rosterSize*workingDays - s.TotalSlots
	if unconfirmed > 0 {
		s.EstimatedSavings = decimal.NewFromInt(int64(unconfirmed)).Mul(mealCost)
	}
	return s
}
