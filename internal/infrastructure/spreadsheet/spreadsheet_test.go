package spreadsheet_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/spreadsheet"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// ─── Importación de nómina ───────────────────────────────────────────────────

func TestParseRoster_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Nombre", "Puesto", "Restricciones Alimentarias", "Activo"},
		{"Ana López", "Cajera", "Sin gluten", "Sí"},
		{"Luis Pérez", "Almacén", "", "no"},
		{"Marta Ruiz", "Gerente", "", ""},
	})

	rows, rowErrs, err := spreadsheet.RosterParser{}.ParseRoster("nomina.xlsx", data)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ana López", rows[0].Name)
	assert.Equal(t, "Cajera", rows[0].Position)
	assert.Equal(t, "Sin gluten", rows[0].DietaryRestrictions)
	assert.True(t, rows[0].Active)
	assert.False(t, rows[1].Active)
	assert.True(t, rows[2].Active, "Activo vacío cuenta como activo")
	assert.Equal(t, 4, rows[2].Row)
}

func TestParseRoster_CSVConEncabezadosSinAcentos(t *testing.T) {
	data := []byte("\xef\xbb\xbfnombre,PUESTO,restricciones alimentarias,activo\n" +
		"\"Gómez, Juan\",Chef,\"Sin \"\"mariscos\"\"\",1\n" +
		",Ayudante,,1\n" +
		"Rosa,Ayudante,,quizá\n")

	rows, rowErrs, err := spreadsheet.RosterParser{}.ParseRoster("nomina.CSV", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gómez, Juan", rows[0].Name)
	assert.Equal(t, `Sin "mariscos"`, rows[0].DietaryRestrictions)

	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, 4, rowErrs[1].Row)
}

func TestParseRoster_EncabezadosConTildesYEspacios(t *testing.T) {
	data := []byte("  NÓMBRE ,Puésto,Restricciones   Alimentarias,ACTIVO\n" +
		"Ana,Cocina,Vegana,No\n")

	rows, rowErrs, err := spreadsheet.RosterParser{}.ParseRoster("nomina.csv", data)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].Name)
	assert.Equal(t, "Cocina", rows[0].Position)
	assert.Equal(t, "Vegana", rows[0].DietaryRestrictions)
	assert.False(t, rows[0].Active)
}

func TestParseRoster_SinColumnaNombre(t *testing.T) {
	_, _, err := spreadsheet.RosterParser{}.ParseRoster("nomina.csv", []byte("Puesto,Activo\nChef,1\n"))
	assert.Error(t, err)
}

func TestParseRoster_FormatoNoSoportado(t *testing.T) {
	_, _, err := spreadsheet.RosterParser{}.ParseRoster("nomina.pdf", []byte("x"))
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)
}

// ─── Exportación CSV ────────────────────────────────────────────────────────

func TestCSVEncoder_Escapa(t *testing.T) {
	out, err := spreadsheet.CSVEncoder{}.Encode(
		[]string{"Nombre", "Restricciones"},
		[][]string{{"Gómez, Juan", `dice "no"`}, {"Ana", "línea1\nlínea2"}},
	)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("\xef\xbb\xbf")))

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Nombre", "Restricciones"},
		{"Gómez, Juan", `dice "no"`},
		{"Ana", "línea1\nlínea2"},
	}, records)
	assert.Contains(t, string(out), `"dice ""no"""`)
}

// ─── Reporte semanal XLSX ───────────────────────────────────────────────────

func TestXLSXReportRenderer(t *testing.T) {
	report := &dto.WeeklyReport{
		WeekID:      "2026-10-19",
		Label:       "Semana del 19 de octubre de 2026",
		MenuStatus:  "published",
		GeneratedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		MealCost:    decimal.NewFromInt(50),
		Days:        []dto.DayCountDTO{{Day: "lunes", Name: "Lunes", Count: 1}, {Day: "martes", Name: "Martes", Count: 1}},
		Branches: []dto.BranchReport{{
			BranchID: "centro",
			Name:     "Centro / Matriz",
			Summary:  dto.SummaryResponse{RosterSize: 2, ConfirmedEmployees: 1, TotalSlots: 2, EstimatedSavings: decimal.NewFromInt(400)},
			Rows: []dto.ReportRow{
				{EmployeeID: "emp1", Name: "Ana", Confirmed: []bool{true, true}, Total: 2},
				{EmployeeID: "emp2", Name: "Luis", Confirmed: []bool{false, false}},
			},
		}},
	}

	r := spreadsheet.XLSXReportRenderer{}
	assert.Equal(t, "xlsx", r.Extension())
	out, err := r.Render(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Resumen", "Centro - Matriz"}, f.GetSheetList())
	v, err := f.GetCellValue("Centro - Matriz", "C2")
	require.NoError(t, err)
	assert.Equal(t, "X", v)
	v, err = f.GetCellValue("Resumen", "A1")
	require.NoError(t, err)
	assert.Equal(t, report.Label, v)
}
