package gas

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

//go:embed gazlar.csv
var embeddedCSV []byte

// Column names of the tabular gas database.
const (
	ColumnName  = "isim"
	ColumnGroup = "grup"
	ColumnLEL   = "LEL"
)

// Embedded loads the table shipped with the binary.
func Embedded() (*Table, error) {
	return LoadCSV(bytes.NewReader(embeddedCSV))
}

func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read gas csv: %w", err)
	}
	return fromRows(rows)
}

// LoadXLSX reads the first sheet of an Excel workbook.
func LoadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gas workbook: %w", err)
	}
	defer f.Close()

	// Raw values: the display text of a formatted cell ("1,000", "2") is not the number.
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read gas workbook: %w", err)
	}
	return fromRows(rows)
}

// LoadFile picks the reader by extension: .csv or .xlsx.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gas table: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".xlsx":
		return LoadXLSX(f)
	}
	return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidTable, filepath.Ext(path))
}

func fromRows(rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: header and at least one gas required", ErrInvalidTable)
	}
	nameCol, groupCol, lelCol, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2
		if len(row) <= max(nameCol, groupCol, lelCol) {
			return nil, fmt.Errorf("%w: row %d: missing columns", ErrInvalidTable, line)
		}
		group, err := ParseGroup(row[groupCol])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidTable, line, err)
		}
		lel, err := strconv.ParseFloat(strings.TrimSpace(row[lelCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad LEL %q", ErrInvalidTable, line, row[lelCol])
		}
		props = append(props, Property{
			Name:  strings.TrimSpace(row[nameCol]),
			Group: group,
			LEL:   lel,
		})
	}
	return NewTable(props)
}

func headerIndex(header []string) (name, group, lel int, err error) {
	name, group, lel = -1, -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), ColumnName):
			name = i
		case strings.EqualFold(strings.TrimSpace(h), ColumnGroup):
			group = i
		case strings.EqualFold(strings.TrimSpace(h), ColumnLEL):
			lel = i
		}
	}
	if name < 0 || group < 0 || lel < 0 {
		return 0, 0, 0, fmt.Errorf("%w: header must contain %s, %s and %s columns",
			ErrInvalidTable, ColumnName, ColumnGroup, ColumnLEL)
	}
	return name, group, lel, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
