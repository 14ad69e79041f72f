package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
)

const summarySheet = "Resumen"

// XLSXReportRenderer genera el reporte semanal: una hoja de resumen y una por sucursal.
type XLSXReportRenderer struct{}

var _ ports.WeeklyReportRenderer = XLSXReportRenderer{}

func (XLSXReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXReportRenderer) Extension() string { return "xlsx" }

func (XLSXReportRenderer) Render(ctx context.Context, r *dto.WeeklyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := writeSummary(f, r, bold); err != nil {
		return nil, err
	}

	used := map[string]bool{summarySheet: true}
	for _, b := range r.Branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := sheetName(b.Name, b.BranchID, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("hoja %s: %w", name, err)
		}
		if err := writeBranch(f, name, r.Days, b, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, r *dto.WeeklyReport, bold int) error {
	s := summarySheet
	rows := [][]any{
		{r.Label},
		{"Semana", r.WeekID},
		{"Estado del menú", r.MenuStatus},
		{"Generado", r.GeneratedAt.Format("02/01/2006 15:04")},
		{"Costo por comida", r.MealCost.StringFixed(2)},
		{},
		{"Sucursal", "Empleados", "Confirmados", "Comidas", "Ahorro estimado"},
	}
	for _, b := range r.Branches {
		rows = append(rows, []any{b.Name, b.Summary.RosterSize, b.Summary.ConfirmedEmployees, b.Summary.TotalSlots, b.Summary.EstimatedSavings.StringFixed(2)})
	}
	rows = append(rows, []any{"Total", r.Totals.RosterSize, r.Totals.ConfirmedEmployees, r.Totals.TotalSlots, r.Totals.EstimatedSavings.StringFixed(2)})
	rows = append(rows, []any{})

	dayHeader := []any{"Día"}
	dayCounts := []any{"Comidas"}
	for _, d := range r.Days {
		dayHeader = append(dayHeader, d.Name)
		dayCounts = append(dayCounts, d.Count)
	}
	rows = append(rows, dayHeader, dayCounts)

	if err := writeRows(f, s, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(s, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(s, "A7", "E7", bold); err != nil {
		return err
	}
	return f.SetColWidth(s, "A", "A", 28)
}

func writeBranch(f *excelize.File, sheet string, days []dto.DayCountDTO, b dto.BranchReport, bold int) error {
	header := []any{"Empleado", "Puesto"}
	for _, d := range days {
		header = append(header, d.Name)
	}
	header = append(header, "Total")

	rows := [][]any{header}
	for _, row := range b.Rows {
		line := []any{row.Name, row.Position}
		for _, ok := range row.Confirmed {
			if ok {
				line = append(line, "X")
			} else {
				line = append(line, "")
			}
		}
		line = append(line, row.Total)
		rows = append(rows, line)
	}
	totals := []any{"Total", ""}
	for _, d := range b.Summary.PerDay {
		totals = append(totals, d.Count)
	}
	totals = append(totals, b.Summary.TotalSlots)
	rows = append(rows, totals)

	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "B", 26)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return fmt.Errorf("hoja %s fila %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// sheetName nombre de hoja válido (31 caracteres, sin []:*?/\) y único en el libro.
func sheetName(name, fallback string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = fallback
	}
	base := truncateRunes(clean, 31)
	candidate := base
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
