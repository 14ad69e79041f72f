// Package spreadsheet importación y exportación de hojas de cálculo: nóminas (xlsx/csv),
// exportaciones CSV y el reporte semanal en xlsx.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
)

// Encabezados esperados de la nómina.
const (
	ColName         = "Nombre"
	ColPosition     = "Puesto"
	ColRestrictions = "Restricciones Alimentarias"
	ColActive       = "Activo"
)

// ErrUnsupportedFormat extensión distinta de .xlsx o .csv.
var ErrUnsupportedFormat = errors.New("formato no soportado: use .xlsx o .csv")

// RosterParser implementa ports.RosterParser con excelize y encoding/csv.
type RosterParser struct{}

var _ ports.RosterParser = RosterParser{}

func (RosterParser) ParseRoster(filename string, data []byte) ([]ports.RosterRow, []dto.ImportRowError, error) {
	rows, err := readRows(filename, data)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("la hoja está vacía")
	}

	cols := headerIndex(rows[0])
	nameCol, ok := cols[headerKey(ColName)]
	if !ok {
		return nil, nil, fmt.Errorf("falta la columna %q", ColName)
	}

	var out []ports.RosterRow
	var rowErrs []dto.ImportRowError
	for i, r := range rows[1:] {
		line := i + 2
		if blank(r) {
			continue
		}
		name := cell(r, nameCol)
		if name == "" {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: line, Message: ColName + " es requerido"})
			continue
		}
		active := true
		if c, ok := cols[headerKey(ColActive)]; ok {
			v, ok := parseActive(cell(r, c))
			if !ok {
				rowErrs = append(rowErrs, dto.ImportRowError{Row: line, Message: fmt.Sprintf("%s inválido: %q", ColActive, cell(r, c))})
				continue
			}
			active = v
		}
		row := ports.RosterRow{Row: line, Name: name, Active: active}
		if c, ok := cols[headerKey(ColPosition)]; ok {
			row.Position = cell(r, c)
		}
		if c, ok := cols[headerKey(ColRestrictions)]; ok {
			row.DietaryRestrictions = cell(r, c)
		}
		out = append(out, row)
	}
	return out, rowErrs, nil
}

func readRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("abrir xlsx: %w", err)
		}
		defer func() { _ = f.Close() }()
		sheet := f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("el libro no tiene hojas")
		}
		return f.GetRows(sheet)
	case ".csv":
		r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("leer csv: %w", err)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// headerKey compara encabezados sin acentos, mayúsculas ni espacios extra.
func headerKey(s string) string {
	return strings.Join(strings.Fields(menu.NormalizeDayKey(s)), " ")
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, dup := idx[k]; !dup && k != "" {
			idx[k] = i
		}
	}
	return idx
}

func cell(r []string, i int) string {
	if i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseActive vacío cuenta como activo.
func parseActive(s string) (bool, bool) {
	switch headerKey(s) {
	case "", "si", "s", "true", "1", "x", "activo", "yes", "verdadero":
		return true, true
	case "no", "n", "false", "0", "inactivo", "falso":
		return false, true
	default:
		return false, false
	}
}
