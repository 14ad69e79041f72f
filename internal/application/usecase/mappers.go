package usecase

import (
	"time"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/pkg/dates"
)

func toMenuItems(in []dto.MenuItemDTO) []entity.MenuItem {
	out := make([]entity.MenuItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.MenuItem{Name: it.Name, Description: it.Description})
	}
	return out
}

func toMenuResponse(m *entity.WeeklyMenu, state confirmation.WindowState, clock Clock) *dto.MenuResponse {
	if m == nil {
		return nil
	}
	label := m.ID
	if monday, err := clock.Monday(m.ID); err == nil {
		label = dates.WeekLabel(monday)
	}
	days := make([]dto.DayMenuResponse, 0, len(entity.Weekdays))
	for _, d := range entity.Weekdays {
		items := make([]dto.MenuItemDTO, 0, len(m.Days[d].Items))
		for _, it := range m.Days[d].Items {
			items = append(items, dto.MenuItemDTO{Name: it.Name, Description: it.Description})
		}
		days = append(days, dto.DayMenuResponse{Day: string(d), Name: menu.FormatDayName(string(d)), Items: items})
	}
	return &dto.MenuResponse{
		ID:                 m.ID,
		Label:              label,
		Status:             string(m.Status),
		ConfirmStart:       m.ConfirmStart,
		ConfirmEnd:         m.ConfirmEnd,
		Window:             string(state),
		Days:               days,
		TotalEmployees:     m.TotalEmployees,
		ConfirmedEmployees: m.ConfirmedEmployees,
		ActualAttendees:    m.ActualAttendees,
		WasteReduction:     m.WasteReduction,
		UpdatedAt:          m.UpdatedAt,
	}
}

// windowMessageCodes código de mensaje para cada estado no editable.
var windowMessageCodes = map[confirmation.WindowState]string{
	confirmation.WindowUndefined:  "WINDOW_UNDEFINED",
	confirmation.WindowNotYetOpen: "WINDOW_NOT_OPEN",
	confirmation.WindowClosed:     "WINDOW_CLOSED",
}

func windowResponse(weekID string, m *entity.WeeklyMenu, ev confirmation.Evaluator, now time.Time) dto.WindowResponse {
	var start, end *time.Time
	if m != nil {
		start, end = m.ConfirmStart, m.ConfirmEnd
	}
	state := ev.Evaluate(now, start, end)
	return dto.WindowResponse{
		WeekID:      weekID,
		State:       string(state),
		Start:       start,
		End:         end,
		Editable:    state.Editable(),
		MessageCode: windowMessageCodes[state],
	}
}

func dayCounts(s confirmation.Summary) []dto.DayCountDTO {
	out := make([]dto.DayCountDTO, 0, s.WorkingDays)
	for _, d := range entity.ConfirmableDays(s.WorkingDays) {
		out = append(out, dto.DayCountDTO{Day: string(d), Name: menu.FormatDayName(string(d)), Count: s.PerDayCount(d)})
	}
	return out
}

func toSummaryResponse(s confirmation.Summary, settings entity.Settings) dto.SummaryResponse {
	return dto.SummaryResponse{
		RosterSize:         s.RosterSize,
		WorkingDays:        s.WorkingDays,
		ConfirmedEmployees: s.ConfirmedEmployees,
		TotalSlots:         s.TotalSlots,
		PerDay:             dayCounts(s),
		MealCost:           settings.MealCost,
		EstimatedSavings:   s.EstimatedSavings,
	}
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		BranchID:            e.BranchID,
		Position:            e.Position,
		DietaryRestrictions: e.DietaryRestrictions,
		Active:              e.Active,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:            b.ID,
		Name:          b.Name,
		EmployeeCount: b.EmployeeCount,
		CoordinatorID: b.CoordinatorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToUserResponse salida de un usuario; la usa también el caso de uso de autenticación.
func ToUserResponse(u *entity.User) dto.UserResponse {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		BranchID:    u.BranchID,
		Permissions: perms,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		CreatedBy:   u.CreatedBy,
	}
}
