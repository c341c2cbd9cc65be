package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/ppl-catering/internal/grouptable"
	"github.com/nurpe/ppl-catering/internal/model"
)

const (
	fieldZone = "zona"
	fieldUnit = "unidad"

	summarySheet  = "Resumen"
	maxSheetName  = 31
	fallbackSheet = "Hoja"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a summary sheet plus one sheet per zone. Rows inside a
// zone sheet are grouped by unit, each group headed by its recipe count.
func (g *Generator) Generate(report model.AssignmentReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	byID := make(map[int64]model.AssignmentRow, len(report.Rows))
	rows := make([]grouptable.Row, 0, len(report.Rows))
	for _, r := range report.Rows {
		byID[r.ID] = r
		rows = append(rows, grouptable.Row{
			ID:     r.ID,
			Fields: map[string]string{fieldZone: r.ZoneName, fieldUnit: r.UnitName},
		})
	}
	tree := grouptable.Build(rows, []string{fieldZone, fieldUnit}, grouptable.KeyByPath)

	if err := g.writeSummary(file, summarySheet, report, tree); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for i, zone := range tree.Groups {
		sheetName := buildSheetName(zone.Label, i+1, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeZone(file, sheetName, report, zone, byID); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.AssignmentReport, tree *grouptable.Tree) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contrato")
	set("B1", report.Contract.Number)
	set("A2", "Tercero")
	set("B2", report.Contract.ThirdPartyName)
	set("A3", "Fecha inicial")
	set("B3", formatDate(report.Contract.StartDate))
	set("A4", "Fecha final")
	set("B4", formatDate(report.Contract.EndDate))
	set("A5", "Estado")
	set("B5", string(report.Contract.Status))
	set("A6", "Recetas asignadas")
	set("B6", len(tree.Rows))
	set("A7", "Generado")
	set("B7", formatDateTime(report.GeneratedAt))

	tableRow := 9
	set(fmt.Sprintf("A%d", tableRow), "Zona")
	set(fmt.Sprintf("B%d", tableRow), "Unidades")
	set(fmt.Sprintf("C%d", tableRow), "Recetas asignadas")

	for i, zone := range tree.Groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), zone.Label)
		set(fmt.Sprintf("B%d", row), len(zone.Children))
		set(fmt.Sprintf("C%d", row), zone.TotalItems)
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "C", 20)
	return nil
}

func (g *Generator) writeZone(
	file *excelize.File,
	sheet string,
	report model.AssignmentReport,
	zone *grouptable.Node,
	byID map[int64]model.AssignmentRow,
) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contrato")
	set("B1", report.Contract.Number)
	set("A2", "Zona")
	set("B2", zone.Label)
	set("A3", "Recetas asignadas")
	set("B3", zone.TotalItems)

	tableRow := 5
	headers := []string{
		"Unidad de servicio",
		"Código",
		"Producto",
		"Clase de servicio",
		"Componente de menú",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	row := tableRow + 1
	for _, unit := range zone.Children {
		set(fmt.Sprintf("A%d", row), fmt.Sprintf("%s (%d)", unit.Label, unit.TotalItems))
		row++
		for _, leaf := range unit.Leaves() {
			r := byID[leaf.ID]
			set(fmt.Sprintf("A%d", row), r.UnitName)
			set(fmt.Sprintf("B%d", row), r.ProductCode)
			set(fmt.Sprintf("C%d", row), r.ProductName)
			set(fmt.Sprintf("D%d", row), string(r.ServiceClass))
			set(fmt.Sprintf("E%d", row), r.MenuComponent)
			row++
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	_ = file.SetColWidth(sheet, "C", "C", 40)
	_ = file.SetColWidth(sheet, "D", "E", 20)
	return nil
}

func buildSheetName(label string, position int, used map[string]struct{}) string {
	base := strings.TrimSpace(label)
	if base == "" || base == grouptable.Uncategorized {
		base = "Zona " + strconv.Itoa(position)
	}
	base = truncate(sanitizeSheetName(base), maxSheetName)

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallbackSheet
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return fallbackSheet
	}
	return value
}

// truncate cuts on runes; excelize counts sheet name length in characters.
func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
