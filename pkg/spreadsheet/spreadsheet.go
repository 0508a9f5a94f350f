package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding lead rows in templates and exports.
const SheetName = "Prospectos"

// BillingSheetName is the worksheet of the won-clients billing report.
const BillingSheetName = "Facturación"

// LeadColumns is the header row of the import template. Imports resolve
// columns by these names, not by position.
var LeadColumns = []string{
	"Nombre Completo",
	"Empresa",
	"Email",
	"Teléfono",
	"Etapa",
	"Vendedor Asignado (Email)",
	"Productos de Interés",
	"Referido por",
	"Observaciones",
}

// BillingColumns is the header row of the billing report export.
var BillingColumns = []string{
	"Cliente",
	"Empresa",
	"Vendedor",
	"Estado",
	"Mes",
	"Facturado",
}

// LeadRow is one parsed spreadsheet row. Fields are raw strings; name
// resolution against stages, users, products and providers happens later.
type LeadRow struct {
	Row          int // 1-based worksheet row number
	Name         string
	Company      string
	Email        string
	Phone        string
	StageName    string
	OwnerEmail   string
	Products     []string
	ProviderName string
	Observations string
}

// BillingRow is one line of the billing report, one per client and month.
type BillingRow struct {
	ClientName   string
	Company      string
	OwnerName    string
	ClientStatus string
	Month        string
	Billed       bool
}

// Template builds the downloadable import workbook containing only the
// header row.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := writeHeader(f, SheetName, LeadColumns); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseLeads reads lead rows from an uploaded workbook. Columns are matched
// by header name on the first sheet; blank rows are skipped. Rows are
// returned as-is, including incomplete ones, so the caller can report which
// worksheet row failed validation.
func ParseLeads(r io.Reader) ([]LeadRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"Nombre Completo", "Etapa"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, header string) string {
		i, ok := cols[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var parsed []LeadRow
	for i, row := range rows[1:] {
		lr := LeadRow{
			Row:          i + 2,
			Name:         cell(row, "Nombre Completo"),
			Company:      cell(row, "Empresa"),
			Email:        cell(row, "Email"),
			Phone:        cell(row, "Teléfono"),
			StageName:    cell(row, "Etapa"),
			OwnerEmail:   cell(row, "Vendedor Asignado (Email)"),
			Products:     splitList(cell(row, "Productos de Interés")),
			ProviderName: cell(row, "Referido por"),
			Observations: cell(row, "Observaciones"),
		}
		if isEmptyRow(lr) {
			continue
		}
		parsed = append(parsed, lr)
	}
	return parsed, nil
}

// ExportLeads builds a workbook of the given lead rows under the template
// header.
func ExportLeads(rows []LeadRow) (*excelize.File, error) {
	f, err := Template()
	if err != nil {
		return nil, err
	}

	for i, lr := range rows {
		values := []interface{}{
			lr.Name,
			lr.Company,
			lr.Email,
			lr.Phone,
			lr.StageName,
			lr.OwnerEmail,
			strings.Join(lr.Products, ", "),
			lr.ProviderName,
			lr.Observations,
		}
		if err := writeRow(f, SheetName, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BillingReport builds the won-clients billing workbook, one row per client
// and month.
func BillingReport(rows []BillingRow) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(BillingSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := writeHeader(f, BillingSheetName, BillingColumns); err != nil {
		return nil, err
	}

	for i, br := range rows {
		billed := "No"
		if br.Billed {
			billed = "Sí"
		}
		values := []interface{}{
			br.ClientName,
			br.Company,
			br.OwnerName,
			br.ClientStatus,
			br.Month,
			billed,
		}
		if err := writeRow(f, BillingSheetName, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return writeRow(f, sheet, 1, values)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isEmptyRow(lr LeadRow) bool {
	return lr.Name == "" && lr.Company == "" && lr.Email == "" &&
		lr.Phone == "" && lr.StageName == "" && lr.OwnerEmail == "" &&
		len(lr.Products) == 0 && lr.ProviderName == "" && lr.Observations == ""
}
