package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/ppl-catering/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// page pairs a document with its cp1252 translator so the core Helvetica
// font renders Spanish accents without embedding a font file.
type page struct {
	tr func(string) string
}

func (*Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	g := page{tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(g.tr("Contrato "+doc.Contract.Number), false)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, g.tr("Ficha de contrato de alimentación"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, g.tr(fmt.Sprintf("Contrato No. %s", safeValue(doc.Contract.Number))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, g.tr(fmt.Sprintf("Vigencia: %s a %s", formatDate(doc.Contract.StartDate), formatDate(doc.Contract.EndDate))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.thirdPartyBlock(pdf, doc.ThirdParty)
	pdf.Ln(4)

	g.section(pdf, "Condiciones")
	lines := []string{
		fmt.Sprintf("Estado: %s", statusLabel(doc.Contract.Status)),
		fmt.Sprintf("Fecha de ejecución: %s", formatDatePtr(doc.Contract.ExecutionDate)),
		fmt.Sprintf("Población (PPL): %d", doc.Contract.PPL),
		fmt.Sprintf("Servicios: %d   Ciclos: %d", doc.Contract.ServiceCount, doc.Contract.CycleCount),
		fmt.Sprintf("Valor: %s", formatAmount(doc.Contract.Value)),
		fmt.Sprintf("Recetas asignadas: %d", doc.AssignmentCount),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, g.tr(line), "", "L", false)
	}
	pdf.Ln(2)

	g.section(pdf, "Zonas y unidades de servicio")
	widths := []float64{60, 85, 35}
	g.tableRow(pdf, []string{"Zona", "Unidad de servicio", "PPL"}, widths, true)
	unitsByZone := make(map[int64][]model.ServiceUnit)
	for _, unit := range doc.Units {
		unitsByZone[unit.ZoneID] = append(unitsByZone[unit.ZoneID], unit)
	}
	for _, zone := range doc.Zones {
		units := unitsByZone[zone.ID]
		if len(units) == 0 {
			g.tableRow(pdf, []string{zone.Name, "-", fmt.Sprintf("%d", zone.PPL)}, widths, false)
			continue
		}
		for _, unit := range units {
			g.tableRow(pdf, []string{zone.Name, unit.Name, fmt.Sprintf("%d", unit.PPL)}, widths, false)
		}
	}

	if strings.TrimSpace(doc.Contract.Clauses) != "" {
		pdf.Ln(4)
		g.section(pdf, "Cláusulas")
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 5, g.tr(doc.Contract.Clauses), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(fontName, "", 9)
	pdf.CellFormat(0, 5, g.tr("Generado: "+formatDateTime(doc.GeneratedAt)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g page) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, g.tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
}

func (g page) thirdPartyBlock(pdf *gofpdf.Fpdf, tp model.ThirdParty) {
	g.section(pdf, "Tercero")
	lines := []string{
		safeValue(tp.Name),
		fmt.Sprintf("NIT: %s", safeValue(tp.TaxID)),
		fmt.Sprintf("Dirección: %s", safeValue(tp.Address)),
		fmt.Sprintf("Teléfono: %s", safeValue(tp.Phone)),
		fmt.Sprintf("Correo: %s", safeValue(tp.Email)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, g.tr(line), "", "L", false)
	}
}

func (g page) tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, g.tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func statusLabel(status model.ContractStatus) string {
	switch status {
	case model.ContractStatusOpen:
		return "Abierto"
	case model.ContractStatusInProduction:
		return "En producción"
	case model.ContractStatusFinished:
		return "Finalizado"
	case model.ContractStatusInactive:
		return "Inactivo"
	default:
		return safeValue(string(status))
	}
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("$ %.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
