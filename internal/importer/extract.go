package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FileError aborts the whole batch before any row is processed. Row-level
// problems never surface as a FileError.
type FileError struct {
	Code    string
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}

func newFileError(code, message string) *FileError {
	return &FileError{Code: code, Message: message}
}

// RawRow is one positional tuple of cell values with its 1-based index in
// the source file.
type RawRow struct {
	Number int
	Cells  []string
}

// ExtractRows reads an uploaded spreadsheet into ordered rows. The byte
// cap is enforced before parsing and the row cap after, so an oversized
// request fails immediately instead of running long.
func ExtractRows(r io.Reader, filename string, maxBytes int64, maxRows int) ([]RawRow, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, newFileError("invalid_file", "Failed to read uploaded file")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, newFileError("file_too_large", fmt.Sprintf("File exceeds the %d byte limit", maxBytes))
	}

	var cells [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		cells, err = readCSV(data)
	case ".xlsx":
		cells, err = readXLSX(data)
	default:
		return nil, newFileError("invalid_file_type", "Only .csv and .xlsx uploads are supported")
	}
	if err != nil {
		return nil, err
	}

	if len(cells) == 0 {
		return nil, newFileError("empty_file", "Uploaded file contains no rows")
	}
	if maxRows > 0 && len(cells) > maxRows {
		return nil, newFileError("row_limit_exceeded", fmt.Sprintf("File exceeds the %d row limit", maxRows))
	}

	rows := make([]RawRow, 0, len(cells))
	for i, row := range cells {
		rows = append(rows, RawRow{Number: i + 1, Cells: row})
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows := make([][]string, 0, 256)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newFileError("invalid_csv", "CSV parsing failed")
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newFileError("invalid_xlsx", "XLSX file could not be opened")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, newFileError("invalid_xlsx", "XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, newFileError("invalid_xlsx", "XLSX rows could not be read")
	}
	return rows, nil
}
