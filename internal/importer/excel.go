package importer

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelReader decodes the first sheet of a workbook. Browsers on Windows label plain CSV as
// application/vnd.ms-excel, so text content is handed to the csv reader.
type excelReader struct {
	csv Reader
}

func (x *excelReader) Read(data []byte) ([]RawRow, error) {
	switch {
	case sniff(data, "text/plain"):
		return x.csv.Read(data)
	case sniff(data, "application/x-ole-storage"):
		// Legacy BIFF workbooks are not supported by the spreadsheet library.
		return nil, fmt.Errorf("%w: legacy .xls workbook, save it as .xlsx or .csv", ErrUnreadableFile)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrUnreadableFile, err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrUnreadableFile, sheets[0], err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))

	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup && name != "" {
			cols[name] = i
		}
	}

	// Header names match exactly, falling back to the lower-case spelling when the
	// capitalised column is missing or blank in a given row.
	cell := func(record []string, name string) string {
		for _, key := range []string{name, strings.ToLower(name)} {
			idx, ok := cols[key]
			if !ok || idx >= len(record) {
				continue
			}

			if v := strings.TrimSpace(record[idx]); v != "" {
				return v
			}
		}

		return ""
	}

	var rows []RawRow

	for _, record := range records[1:] {
		if blank(record) {
			continue
		}

		rows = append(rows, RawRow{
			Date:        cell(record, "Date"),
			Amount:      cell(record, "Amount"),
			Category:    cell(record, "Category"),
			Description: cell(record, "Description"),
		})
	}

	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
