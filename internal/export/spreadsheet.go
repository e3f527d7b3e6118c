package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/usecase"
)

// SpreadsheetWriter renders sheets into a single xlsx workbook.
type SpreadsheetWriter struct{}

func NewSpreadsheetWriter() *SpreadsheetWriter {
	return &SpreadsheetWriter{}
}

// Write produces the workbook bytes. Columns are sized to their widest cell
// plus padding.
func (w *SpreadsheetWriter) Write(sheets []domain.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, err
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet domain.Sheet) error {
	widths := make([]int, len(sheet.Header))

	writeRow := func(rowIdx int, cells []string) error {
		for colIdx, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return err
			}
			if colIdx < len(widths) && len(value) > widths[colIdx] {
				widths[colIdx] = len(value)
			}
		}
		return nil
	}

	if err := writeRow(1, sheet.Header); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		if err := writeRow(i+2, row); err != nil {
			return err
		}
	}

	for colIdx, width := range widths {
		col, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}

var _ usecase.TableSink = (*SpreadsheetWriter)(nil)
