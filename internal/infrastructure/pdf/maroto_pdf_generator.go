// Package pdf genera el reporte imprimible de un turno.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Punto de venta │ Estado + ID del turno    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Empleado / Inicio / Fin / Límite de cierre           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CHECKLISTS: apertura y cierre                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJA: Tipo | Monto | Hora                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notas de cierre + QR con el ID                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/staffops-api/internal/application/report"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006 15:04"

var _ report.ShiftPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.ShiftPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateShiftPDF las fechas se imprimen en la zona horaria de la empresa.
func (g *MarotoPDFGenerator) GenerateShiftPDF(_ context.Context, data report.ShiftReportData) ([]byte, error) {
	if data.Shift == nil || data.Company == nil {
		return nil, fmt.Errorf("pdf: turno y empresa son obligatorios")
	}
	loc := data.Company.Location()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de turno", true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(data, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(checklistRows("CHECKLIST DE APERTURA", data.Shift.OpenData.Checklist)...)
	var closing []string
	if data.Shift.CloseData != nil {
		closing = data.Shift.CloseData.Checklist
	}
	m.AddRows(checklistRows("CHECKLIST DE CIERRE", closing)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(cashHeaderRow())
	m.AddRows(cashRows(data.Shift.CashLogs, loc)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data.Shift)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(data report.ShiftReportData) core.Row {
	locationName := "Punto de venta " + data.Shift.LocationID
	if data.Location != nil {
		locationName = data.Location.Name
	}
	statusColor := colorPrimary
	if data.Shift.Status == entity.ShiftExpired {
		statusColor = colorAlert
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(locationName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE TURNO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(statusLabel(data.Shift.Status), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7, Color: statusColor}),
			text.New(data.Shift.ID, props.Text{Size: 6.5, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func detailsRow(data report.ShiftReportData, loc *time.Location) core.Row {
	employee := data.Shift.UserID
	if data.User != nil && data.User.Name != "" {
		employee = data.User.Name
	}
	end := "—"
	if data.Shift.EndAt != nil {
		end = data.Shift.EndAt.In(loc).Format(dateLayout)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Empleado: "+employee, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New(fmt.Sprintf("Inicio: %s   |   Fin: %s   |   Límite de cierre: %s",
				data.Shift.StartAt.In(loc).Format(dateLayout),
				end,
				data.Shift.CloseDeadlineAt.In(loc).Format(dateLayout),
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func checklistRows(title string, items []string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	if len(items) == 0 {
		return append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Sin registros", props.Text{Size: 8, Color: colorGray, Left: 2}),
		)))
	}
	for _, it := range items {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+it, props.Text{Size: 8, Left: 2}),
		)))
	}
	return rows
}

func cashHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Registro de caja", 4, align.Left),
		h("Monto", 4, align.Right),
		h("Hora", 4, align.Right),
	)
}

func cashRows(logs []entity.CashLog, loc *time.Location) []core.Row {
	if len(logs) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos de caja", props.Text{Size: 8, Color: colorGray, Left: 1, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		kind := "Apertura"
		if l.Type == entity.CashLogClose {
			kind = "Cierre"
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(kind, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatMoney(l.Amount.StringFixed(2)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(l.CreatedAt.In(loc).Format(dateLayout), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRows(s *entity.Shift) []core.Row {
	notes := "—"
	reason := ""
	if s.CloseData != nil {
		notes = nonEmpty(s.CloseData.Notes, "—")
		reason = s.CloseData.WriteOffReason
	}
	left := []core.Component{
		text.New("Notas: "+notes, props.Text{Size: 8, Top: 4, Left: 3}),
	}
	if reason != "" {
		left = append(left, text.New("Motivo de merma: "+reason, props.Text{Size: 8, Top: 12, Left: 3, Color: colorAlert}))
	}
	return []core.Row{
		row.New(40).Add(
			col.New(8).Add(left...),
			col.New(4).Add(code.NewQr(s.ID, props.Rect{Percent: 90, Center: true})),
		),
	}
}

func statusLabel(status string) string {
	switch status {
	case entity.ShiftOpen:
		return "ABIERTO"
	case entity.ShiftClosed:
		return "CERRADO"
	case entity.ShiftExpired:
		return "VENCIDO"
	}
	return strings.ToUpper(status)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma: "1234.50" → "1.234,50".
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
