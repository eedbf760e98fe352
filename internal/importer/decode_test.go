package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hadetan/expense-tracking/internal/importer"
)

// workbook builds an in-memory .xlsx whose first sheet holds rows.
func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func TestDecode_CSV(t *testing.T) {
	data := " DATE ,Amount,category,Description , Extra\n" +
		"15-03-2024,100.50,Travel,Taxi fare,x\n" +
		"16-03-2024,20\n" +
		"\n" +
		"\"17-03-2024\",\"1,5\",\"Meals\",\"Dinner, with team\"\n"

	rows, err := importer.Decode([]byte(data), "text/csv; charset=utf-8")
	require.NoError(t, err)

	assert.Equal(t, []importer.RawRow{
		{Date: "15-03-2024", Amount: "100.50", Category: "Travel", Description: "Taxi fare"},
		{Date: "16-03-2024", Amount: "20"},
		{Date: "17-03-2024", Amount: "1,5", Category: "Meals", Description: "Dinner, with team"},
	}, rows)
}

func TestDecode_CSVWindows1252(t *testing.T) {
	data := []byte("Date,Amount,Category,Description\n15-03-2024,4.20,Caf\xe9,Cr\xe8me br\xfbl\xe9e\n")

	rows, err := importer.Decode(data, "application/csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Category)
	assert.Equal(t, "Crème brûlée", rows[0].Description)
}

func TestDecode_CSVHeaderOnly(t *testing.T) {
	rows, err := importer.Decode([]byte("Date,Amount,Category,Description\n"), "text/csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecode_Spreadsheet(t *testing.T) {
	data := workbook(t,
		[]any{"Date", "Amount", "Category", "Description"},
		[]any{" 15-03-2024 ", "100.50", " Travel", "Taxi fare "},
		[]any{},
		[]any{"16-03-2024", 42, "Meals", "Lunch"},
	)

	rows, err := importer.Decode(data, importer.TypeSpreadsheet)
	require.NoError(t, err)

	assert.Equal(t, []importer.RawRow{
		{Date: "15-03-2024", Amount: "100.50", Category: "Travel", Description: "Taxi fare"},
		{Date: "16-03-2024", Amount: "42", Category: "Meals", Description: "Lunch"},
	}, rows)
}

func TestDecode_SpreadsheetLowercaseFallback(t *testing.T) {
	data := workbook(t,
		[]any{"Date", "date", "amount", "category", "Description"},
		[]any{"", "15-03-2024", "12", "Office", "Paper"},
		[]any{"16-03-2024", "", "13", "Office", "Toner"},
	)

	rows, err := importer.Decode(data, importer.TypeSpreadsheet)
	require.NoError(t, err)

	assert.Equal(t, []importer.RawRow{
		{Date: "15-03-2024", Amount: "12", Category: "Office", Description: "Paper"},
		{Date: "16-03-2024", Amount: "13", Category: "Office", Description: "Toner"},
	}, rows)
}

func TestDecode_ExcelLabelledCSV(t *testing.T) {
	data := []byte("Date,Amount,Category,Description\n15-03-2024,9.99,Books,Go in Action\n")

	rows, err := importer.Decode(data, importer.TypeExcel)
	require.NoError(t, err)
	assert.Equal(t, []importer.RawRow{
		{Date: "15-03-2024", Amount: "9.99", Category: "Books", Description: "Go in Action"},
	}, rows)
}

func TestDecode_Errors(t *testing.T) {
	legacy := make([]byte, 1024)
	copy(legacy, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})

	tests := []struct {
		name        string
		data        []byte
		contentType string
		wantErr     error
	}{
		{name: "UnsupportedType", data: []byte("{}"), contentType: "application/json", wantErr: importer.ErrUnsupportedType},
		{name: "EmptyType", data: []byte("a,b"), contentType: "", wantErr: importer.ErrUnsupportedType},
		{name: "CorruptWorkbook", data: []byte("PK\x03\x04\x14\x00\x00\x00broken"), contentType: importer.TypeSpreadsheet, wantErr: importer.ErrUnreadableFile},
		{name: "LegacyWorkbook", data: legacy, contentType: importer.TypeExcel, wantErr: importer.ErrUnreadableFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := importer.Decode(tt.data, tt.contentType)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, rows)
		})
	}
}

func TestContentTypeForFilename(t *testing.T) {
	assert.Equal(t, importer.TypeCSV, importer.ContentTypeForFilename("expenses.CSV"))
	assert.Equal(t, importer.TypeExcel, importer.ContentTypeForFilename("old.xls"))
	assert.Equal(t, importer.TypeSpreadsheet, importer.ContentTypeForFilename("march.xlsx"))
	assert.Empty(t, importer.ContentTypeForFilename("notes.txt"))
}

func TestSupported(t *testing.T) {
	assert.True(t, importer.Supported("text/csv; charset=windows-1252"))
	assert.True(t, importer.Supported(importer.TypeSpreadsheet))
	assert.False(t, importer.Supported("image/png"))
}
