// Package sheets reports the shape of supplier XLSX workbooks before an
// import is written for them. It reads structure only and assigns no
// meaning to any column.
package sheets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"doorops/internal/services"
)

// DefaultSampleRows is the number of data rows reported per sheet.
const DefaultSampleRows = 5

// Sheet describes one worksheet.
type Sheet struct {
	Name    string     `json:"name"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Header  []string   `json:"header"`
	Sample  [][]string `json:"sample"`
}

// Workbook describes every worksheet of one file.
type Workbook struct {
	Path   string  `json:"path"`
	Sheets []Sheet `json:"sheets"`
}

// Inspect opens the workbook at path and reports each sheet's row count,
// widest row, header row, and up to sampleRows rows after the header.
func Inspect(path string, sampleRows int) (Workbook, error) {
	book := Workbook{Path: path}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return book, services.Wrap(services.ErrPreconditionFailed, "sheets", "inspect", path+" does not exist", nil)
		}
		return book, services.Wrap(services.ErrFilesystem, "sheets", "inspect", path, err)
	}
	if sampleRows < 0 {
		sampleRows = 0
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return book, services.Wrap(services.ErrFilesystem, "sheets", "open workbook", path, err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return book, services.Wrap(services.ErrFilesystem, "sheets", "read sheet", name, err)
		}
		book.Sheets = append(book.Sheets, describe(name, rows, sampleRows))
	}
	return book, nil
}

func describe(name string, rows [][]string, sampleRows int) Sheet {
	sheet := Sheet{Name: name, Rows: len(rows)}
	for _, row := range rows {
		if len(row) > sheet.Columns {
			sheet.Columns = len(row)
		}
	}
	if len(rows) == 0 {
		return sheet
	}
	sheet.Header = rows[0]
	end := 1 + sampleRows
	if end > len(rows) {
		end = len(rows)
	}
	sheet.Sample = rows[1:end]
	return sheet
}

// String renders a short summary line for a sheet.
func (s Sheet) String() string {
	return fmt.Sprintf("%s: %d rows, %d columns", s.Name, s.Rows, s.Columns)
}
