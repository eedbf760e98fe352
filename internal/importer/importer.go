package importer

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty or has no valid data rows")
	ErrNoSheets        = errors.New("excel file has no sheets")
	ErrUnreadableFile  = errors.New("file could not be read")
)

// Accepted upload content types.
const (
	TypeCSV         = "text/csv"
	TypeCSVAlt      = "application/csv"
	TypeExcel       = "application/vnd.ms-excel"
	TypeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RawRow is one data row of an uploaded file as cell text, before any coercion.
type RawRow struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

// Reader turns the full content of an uploaded file into rows, header excluded.
type Reader interface {
	Read(data []byte) ([]RawRow, error)
}
