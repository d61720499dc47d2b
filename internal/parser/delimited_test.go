package parser

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTempFile writes raw bytes to a file in a temp dir and returns its path
func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TestDelimiterFor tests delimiter selection by extension and override
func TestDelimiterFor(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		override rune
		want     rune
	}{
		{"csv defaults to comma", "data.csv", 0, ','},
		{"txt defaults to comma", "data.txt", 0, ','},
		{"tsv defaults to tab", "data.tsv", 0, '\t'},
		{"tsv extension case-insensitive", "DATA.TSV", 0, '\t'},
		{"override wins", "data.csv", ';', ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DelimiterFor(tt.filename, tt.override); got != tt.want {
				t.Errorf("DelimiterFor(%q, %q) = %q, want %q",
					tt.filename, tt.override, got, tt.want)
			}
		})
	}
}

// TestReadDelimited tests delimited parsing across encodings and delimiters
func TestReadDelimited(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		data         []byte
		delimiter    rune
		wantRows     int
		wantEncoding string
		wantCell     string // contents of the first cell of the last row
		wantErr      bool
	}{
		{
			name:         "plain utf-8 csv",
			filename:     "basic.csv",
			data:         []byte("name,size\nalpha,10\nbeta,20\n"),
			delimiter:    ',',
			wantRows:     3,
			wantEncoding: EncodingUTF8,
			wantCell:     "beta",
		},
		{
			name:         "utf-8 BOM is stripped",
			filename:     "bom.csv",
			data:         append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nvalue\n")...),
			delimiter:    ',',
			wantRows:     2,
			wantEncoding: EncodingUTF8,
			wantCell:     "value",
		},
		{
			name:     "gbk fallback",
			filename: "gbk.csv",
			// "中文" encoded as GBK, which is not valid UTF-8
			data:         append([]byte("name\n"), 0xD6, 0xD0, 0xCE, 0xC4),
			delimiter:    ',',
			wantRows:     2,
			wantEncoding: EncodingGBK,
			wantCell:     "中文",
		},
		{
			name:         "tab separated",
			filename:     "basic.tsv",
			data:         []byte("a\tb\n1\t2\n"),
			delimiter:    '\t',
			wantRows:     2,
			wantEncoding: EncodingUTF8,
			wantCell:     "1",
		},
		{
			name:         "ragged rows are allowed",
			filename:     "ragged.csv",
			data:         []byte("a,b,c\nonly-one\n"),
			delimiter:    ',',
			wantRows:     2,
			wantEncoding: EncodingUTF8,
			wantCell:     "only-one",
		},
		{
			name:         "empty file yields empty table",
			filename:     "empty.csv",
			data:         nil,
			delimiter:    ',',
			wantRows:     0,
			wantEncoding: EncodingUTF8,
		},
		{
			name:     "invalid in both encodings fails",
			filename: "mojibake.csv",
			// 0x81 0x3A is not a GBK pair and 0xFF is invalid everywhere
			data:      append([]byte("a,"), 0x81, 0x3A, 0xFF),
			delimiter: ',',
			wantErr:   true,
		},
		{
			name:      "unbalanced quote fails",
			filename:  "broken.csv",
			data:      []byte("a,b\n\"unterminated,1\n"),
			delimiter: ',',
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, tt.filename, tt.data)

			table, encoding, err := ReadDelimited(path, tt.delimiter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadDelimited() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if table.RowCount() != tt.wantRows {
				t.Errorf("ReadDelimited() returned %d rows, want %d", table.RowCount(), tt.wantRows)
			}
			if encoding != tt.wantEncoding {
				t.Errorf("ReadDelimited() encoding = %q, want %q", encoding, tt.wantEncoding)
			}
			if tt.wantCell != "" {
				last := table.Rows[len(table.Rows)-1]
				if last[0] != tt.wantCell {
					t.Errorf("last row first cell = %q, want %q", last[0], tt.wantCell)
				}
			}
			if table.SourceFile != tt.filename {
				t.Errorf("SourceFile = %q, want %q", table.SourceFile, tt.filename)
			}
		})
	}
}

// TestReadDelimitedMissingFile tests the error path for a missing file
func TestReadDelimitedMissingFile(t *testing.T) {
	_, _, err := ReadDelimited(filepath.Join(t.TempDir(), "nope.csv"), ',')
	if err == nil {
		t.Error("ReadDelimited() expected error for missing file, got nil")
	}
}
