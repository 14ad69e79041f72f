// Package pdf genera el reporte semanal de confirmaciones del comedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comedor Grupo Avika  │  Semana + estado del menú    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: empleados / confirmados / comidas / ahorro         │
//	│  CONTEO POR DÍA                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR SUCURSAL: Empleado | Puesto | L M X J V | Total         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa ports.WeeklyReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

var _ ports.WeeklyReportRenderer = (*MarotoReportRenderer)(nil)

// NewMarotoReportRenderer construye el generador.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

func (g *MarotoReportRenderer) ContentType() string { return "application/pdf" }
func (g *MarotoReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(ctx context.Context, r *dto.WeeklyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte semanal del comedor", true).
		WithAuthor("Comedor Grupo Avika", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(r.Totals))
	m.AddRows(dayCountRows(r.Days)...)

	for _, b := range r.Branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.AddRows(line.NewRow(4))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(branchRows(r.Days, b)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.WeeklyReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Comedor Grupo Avika", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Label, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE CONFIRMACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Menú: "+r.MenuStatus, props.Text{Size: 9, Align: align.Right, Top: 7}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func totalsRow(t dto.SummaryResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Empleados", strconv.Itoa(t.RosterSize)),
		cell("Confirmados", strconv.Itoa(t.ConfirmedEmployees)),
		cell("Comidas", strconv.Itoa(t.TotalSlots)),
		cell("Ahorro estimado", "$"+formatMoney(t.EstimatedSavings)),
	)
}

func dayCountRows(days []dto.DayCountDTO) []core.Row {
	if len(days) == 0 {
		return nil
	}
	size := gridSize / len(days)
	names := make([]core.Col, 0, len(days))
	counts := make([]core.Col, 0, len(days))
	for _, d := range days {
		names = append(names, col.New(size).Add(text.New(d.Name, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary,
		})))
		counts = append(counts, col.New(size).Add(text.New(strconv.Itoa(d.Count), props.Text{
			Size: 9, Align: align.Center,
		})))
	}
	return []core.Row{row.New(6).Add(names...), row.New(6).Add(counts...)}
}

// branchRows tabla de una sucursal. Con 7 días no cabe la columna de puesto.
func branchRows(days []dto.DayCountDTO, b dto.BranchReport) []core.Row {
	remaining := gridSize - len(days) - 1
	posSize := 0
	if remaining >= 6 {
		posSize = remaining - 4
	}
	nameSize := remaining - posSize

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1,
		}))
	}
	v := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Size: 8, Align: a, Top: 1, Left: 1}))
	}

	rows := []core.Row{
		row.New(8).Add(col.New(gridSize).Add(text.New(
			fmt.Sprintf("%s  (%d de %d confirmados)", b.Name, b.Summary.ConfirmedEmployees, b.Summary.RosterSize),
			props.Text{Style: fontstyle.Bold, Size: 10, Top: 2},
		))),
	}

	header := []core.Col{h("Empleado", nameSize, align.Left)}
	if posSize > 0 {
		header = append(header, h("Puesto", posSize, align.Left))
	}
	for _, d := range days {
		header = append(header, h(abbrev(d.Name), 1, align.Center))
	}
	header = append(header, h("Total", 1, align.Center))
	rows = append(rows, row.New(7).Add(header...))

	for _, e := range b.Rows {
		cols := []core.Col{v(e.Name, nameSize, align.Left)}
		if posSize > 0 {
			cols = append(cols, v(nonEmpty(e.Position, "—"), posSize, align.Left))
		}
		for _, ok := range e.Confirmed {
			mark := ""
			if ok {
				mark = "X"
			}
			cols = append(cols, v(mark, 1, align.Center))
		}
		cols = append(cols, v(strconv.Itoa(e.Total), 1, align.Center))
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func abbrev(day string) string {
	r := []rune(day)
	if len(r) <= 3 {
		return day
	}
	return string(r[:3])
}

// formatMoney separa miles con coma y deja dos decimales. Ej: 1900 → "1,900.00".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	if d.IsNegative() {
		return "-" + string(buf) + frac
	}
	return string(buf) + frac
}
