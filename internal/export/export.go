// Package export renders list results as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaxRows caps how many records a single export may contain.
const MaxRows = 10000

// Column maps a record to one spreadsheet column.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) interface{}
}

// Sheet describes a single-sheet workbook of T records.
type Sheet[T any] struct {
	Name    string
	Columns []Column[T]
}

// Write renders rows as a workbook with a styled header row and writes it to w.
func (s Sheet[T]) Write(w io.Writer, rows []T) error {
	f, err := s.Build(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Build renders rows into a new workbook. Callers must close it.
func (s Sheet[T]) Build(rows []T) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(s.Name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if f.GetSheetName(0) != s.Name {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, col := range s.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(s.Name, cell, col.Header); err != nil {
			f.Close()
			return nil, err
		}

		name, _ := excelize.ColumnNumberToName(i + 1)
		width := col.Width
		if width == 0 {
			width = 15
		}
		_ = f.SetColWidth(s.Name, name, name, width)
	}
	_ = f.SetRowStyle(s.Name, 1, 1, headerStyle)

	for r, record := range rows {
		for i, col := range s.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(s.Name, cell, col.Value(record)); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}
