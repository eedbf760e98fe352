package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/hadetan/expense-tracking/internal/encoding"
)

type csvReader struct{}

func (c *csvReader) Read(data []byte) ([]RawRow, error) {
	utf8Data, err := enc.ToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	reader := csv.NewReader(bytes.NewReader(utf8Data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: reading csv header: %v", ErrUnreadableFile, err)
	}

	cols := make(map[string]int, len(header))

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	cell := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}

		return record[idx]
	}

	var rows []RawRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: reading csv: %v", ErrUnreadableFile, err)
		}

		rows = append(rows, RawRow{
			Date:        cell(record, "date"),
			Amount:      cell(record, "amount"),
			Category:    cell(record, "category"),
			Description: cell(record, "description"),
		})
	}

	return rows, nil
}
