package tabular

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func decodeXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx: workbook has no sheets")
	}

	// The first sheet carries the data; additional sheets are ignored.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("xlsx: missing header row")
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; keep rows rectangular.
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row[:len(header)])
	}

	return &Table{Columns: header, Rows: data}, nil
}

func encodeXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	write := func(col, row int, v string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	for i, h := range t.Columns {
		if err := write(i+1, 1, h); err != nil {
			return nil, fmt.Errorf("xlsx: write header: %w", err)
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			if err := write(c+1, r+2, v); err != nil {
				return nil, fmt.Errorf("xlsx: write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
