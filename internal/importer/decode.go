package importer

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	csvFileReader   Reader = &csvReader{}
	excelFileReader Reader = &excelReader{csv: csvFileReader}
)

// Decode reads every data row of an uploaded file. The declared content type selects the
// format; media type parameters such as charset are ignored.
func Decode(data []byte, contentType string) ([]RawRow, error) {
	var r Reader

	switch mediaType(contentType) {
	case TypeCSV, TypeCSVAlt:
		r = csvFileReader
	case TypeExcel, TypeSpreadsheet:
		r = excelFileReader
	default:
		return nil, ErrUnsupportedType
	}

	return r.Read(data)
}

// Supported reports whether uploads declared as contentType can be decoded.
func Supported(contentType string) bool {
	switch mediaType(contentType) {
	case TypeCSV, TypeCSVAlt, TypeExcel, TypeSpreadsheet:
		return true
	}

	return false
}

// ContentTypeForFilename maps a file extension to the content type Decode expects. Clients that
// send application/octet-stream rely on it.
func ContentTypeForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return TypeCSV
	case ".xls":
		return TypeExcel
	case ".xlsx":
		return TypeSpreadsheet
	}

	return ""
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}

	return mt
}

// sniff reports whether data looks like kind, checking the detected type and its ancestors.
func sniff(data []byte, kind string) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(kind) {
			return true
		}
	}

	return false
}
