// Package parser reads tabular source files (delimited text and Excel
// workbooks) into the row data the pipeline consolidates
package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"table-combiner/internal/models"
)

// Encoding labels reported by ReadDelimited
const (
	EncodingUTF8 = "utf-8"
	EncodingGBK  = "gbk"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DelimiterFor returns the field delimiter for a delimited file.
// An explicit override wins; otherwise .tsv files are tab-separated and
// everything else is comma-separated.
func DelimiterFor(filename string, override rune) rune {
	if override != 0 {
		return override
	}
	if strings.EqualFold(filepath.Ext(filename), ".tsv") {
		return '\t'
	}
	return ','
}

// ReadDelimited reads a delimited text file into a table. The file is
// accepted as UTF-8 when its bytes are valid UTF-8 (a BOM is stripped);
// otherwise it is decoded as GBK. The encoding actually used is returned
// so callers can surface the fallback.
func ReadDelimited(path string, delimiter rune) (models.Table, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Table{}, "", fmt.Errorf("failed to open file: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	encodingUsed := EncodingUTF8
	if !utf8.Valid(data) {
		decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
		if err != nil {
			return models.Table{}, "", fmt.Errorf("file is neither valid UTF-8 nor GBK: %w", err)
		}
		// The decoder substitutes U+FFFD for bytes that are not valid GBK
		// instead of failing. A replacement rune that was not already in
		// the input means the file decoded as garbage, not as GBK.
		if bytes.ContainsRune(decoded, utf8.RuneError) && !bytes.Contains(data, []byte(string(utf8.RuneError))) {
			return models.Table{}, "", fmt.Errorf("file is neither valid UTF-8 nor GBK")
		}
		data = decoded
		encodingUsed = EncodingGBK
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // Allow variable number of fields for flexibility

	var rows [][]string
	lineNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Table{}, "", fmt.Errorf("error reading record at line %d: %w", lineNumber+1, err)
		}
		lineNumber++
		rows = append(rows, record)
	}

	return models.Table{
		SourceFile: filepath.Base(path),
		Rows:       rows,
	}, encodingUsed, nil
}
