package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Column is an ordered field selector for tabular exports.
type Column struct {
	Header string
	Value  func(Row) string
}

func Headers(columns []Column) []string {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	return headers
}

// Table is a header plus string rows ready for export.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func NewTable(name string, rows []Row, columns []Column) Table {
	return Table{
		Name:   name,
		Header: Headers(columns),
		Rows:   NewReporter(rows).ToCSVRows(columns),
	}
}

// WriteCSV writes the header then one line per row. Every cell is wrapped
// in double quotes and written as is; embedded quotes are not escaped.
func (t Table) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeQuotedLine(bw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeQuotedLine(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeQuotedLine(w *bufio.Writer, cells []string) error {
	_, err := w.WriteString(`"` + strings.Join(cells, `","`) + "\"\n")
	return err
}

// WriteXLSX writes the table as a single-sheet workbook.
func (t Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if sheet == "" {
		sheet = "Report"
	}
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	lines := append([][]string{t.Header}, t.Rows...)
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(line))
		for j, v := range line {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Filename builds "{report_type}_{period}.{ext}".
func Filename(reportType, period, format string) string {
	if format == "" {
		format = FormatCSV
	}
	return fmt.Sprintf("%s_%s.%s", reportType, period, format)
}

// Export is a named table ready to be streamed to the client.
type Export struct {
	ReportType string
	Period     string
	Table      Table
}

func (e Export) Filename(format string) string {
	return Filename(e.ReportType, e.Period, format)
}
