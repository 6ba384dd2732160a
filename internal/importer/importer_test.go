package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Width,Height,Qty\n100,50,2\n60,40,1\n", ','},
		{"semicolon", "Breite;Höhe;Anzahl\n100;50;2\n60;40;1\n", ';'},
		{"tab", "Width\tHeight\n100\t50\n60\t40\n", '\t'},
		{"pipe", "Width|Height\n100|50\n60|40\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_EnglishHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Qty", "Width", "Height"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 0 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_GermanHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Breite", "Höhe", "Anzahl"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Width != 0 || mapping.Height != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoQuantityColumn(t *testing.T) {
	mapping, _ := DetectColumns([]string{"W", "H"})
	if mapping.Quantity != -1 {
		t.Errorf("expected no quantity column, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_Positional(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"100", "50", "2"})
	if isHeader {
		t.Error("numeric row should not be a header")
	}
	if mapping.Width != 0 || mapping.Height != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}
}

// ─── parseRow Tests ────────────────────────────────────────

func TestParseRow(t *testing.T) {
	mapping := ColumnMapping{Width: 0, Height: 1, Quantity: 2}

	tests := []struct {
		name      string
		row       []string
		wantCount int
		wantErr   string
		wantWarn  string
	}{
		{"valid", []string{"100", "50", "2"}, 2, "", ""},
		{"decimal comma", []string{"151,5", "36,8", ""}, 1, "", ""},
		{"missing width", []string{"", "50", "1"}, 0, "Missing width", ""},
		{"bad height", []string{"100", "abc", "1"}, 0, "Invalid height", ""},
		{"bad quantity", []string{"100", "50", "x"}, 0, "Invalid quantity", ""},
		{"negative", []string{"-1", "50", "1"}, 0, "must be positive", ""},
		{"NaN width", []string{"NaN", "50", "1"}, 0, "Invalid width", ""},
		{"infinite height", []string{"100", "Inf", "1"}, 0, "Invalid height", ""},
		{"negative infinity", []string{"-Inf", "50", "1"}, 0, "Invalid width", ""},
		{"too wide", []string{"500", "50", "1"}, 1, "", "clamped to 300.0"},
		{"too many", []string{"100", "50", "80"}, maxQuantity, "", "limited to 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plates, errMsg, warnings := parseRow(tt.row, mapping, "Line 1")
			if len(plates) != tt.wantCount {
				t.Errorf("expected %d plates, got %d", tt.wantCount, len(plates))
			}
			if tt.wantErr == "" && errMsg != "" {
				t.Errorf("unexpected error %q", errMsg)
			}
			if tt.wantErr != "" && !strings.Contains(errMsg, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, errMsg)
			}
			if tt.wantWarn != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.wantWarn) {
				t.Errorf("expected warning containing %q, got %v", tt.wantWarn, warnings)
			}
		})
	}
}

func TestParseRow_ClampsPlate(t *testing.T) {
	plates, _, _ := parseRow([]string{"500", "10"}, ColumnMapping{Width: 0, Height: 1, Quantity: -1}, "Row 2")
	if len(plates) != 1 {
		t.Fatalf("expected 1 plate, got %d", len(plates))
	}
	if plates[0].Width != 300 || plates[0].Height != 30 {
		t.Errorf("expected 300 x 30, got %v x %v", plates[0].Width, plates[0].Height)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestImportCSV_WithHeaders(t *testing.T) {
	path := writeTempFile(t, "plates.csv", "Width,Height,Quantity\n100,50,2\n151.5,36.8,1\n")
	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 3 {
		t.Fatalf("expected 3 plates, got %d", len(result.Plates))
	}
	if result.Plates[2].Width != 151.5 || result.Plates[2].Height != 36.8 {
		t.Errorf("unexpected third plate %+v", result.Plates[2])
	}
	if result.Plates[0].ID == result.Plates[1].ID {
		t.Error("expanded plates must get distinct IDs")
	}
}

func TestImportCSV_GermanSemicolon(t *testing.T) {
	path := writeTempFile(t, "platten.csv", "Breite;Höhe\n120,5;60\n80;45\n")
	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 2 {
		t.Fatalf("expected 2 plates, got %d", len(result.Plates))
	}
	if result.Plates[0].Width != 120.5 {
		t.Errorf("expected width 120.5, got %v", result.Plates[0].Width)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	path := writeTempFile(t, "bad.csv", "Width,Quantity\n100,1\n")
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for missing height column")
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("error should name the missing column: %v", result.Errors)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	result := ImportCSV(writeTempFile(t, "empty.csv", "  \n"))
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_SkipsBadRowsKeepsGood(t *testing.T) {
	path := writeTempFile(t, "mixed.csv", "100,50\nabc,50\n\n60,40\n")
	result := ImportCSV(path)
	if len(result.Plates) != 2 {
		t.Errorf("expected 2 plates, got %d", len(result.Plates))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("expected one error on line 2, got %v", result.Errors)
	}
}

func TestImportCSVFromReader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("w|h\n100|50\n"), '|')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 1 {
		t.Fatalf("expected 1 plate, got %d", len(result.Plates))
	}

	l := result.Layout()
	if l.SocketsEnabled || len(l.Plates) != 1 {
		t.Errorf("unexpected layout %+v", l)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plates.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Width", "Height", "Qty"},
		{100, 50, 2},
		{60.5, 40, 1},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 3 {
		t.Fatalf("expected 3 plates, got %d", len(result.Plates))
	}
	if result.Plates[2].Width != 60.5 {
		t.Errorf("expected width 60.5, got %v", result.Plates[2].Width)
	}
}

func TestImportExcel_Positional(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{120, 60},
		{40, 40},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Plates) != 2 {
		t.Fatalf("expected 2 plates, got %d", len(result.Plates))
	}
	if !result.Plates[1].Eligible() {
		t.Error("a 40 x 40 plate should be eligible for sockets")
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "plates.TXT")
	if err := os.WriteFile(csvPath, []byte("width,height\n100,50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ImportFile(csvPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Plates) != 1 {
		t.Errorf("expected 1 plate, got %d", len(result.Plates))
	}

	if _, err := ImportFile(filepath.Join(dir, "plates.pdf")); err == nil || !strings.Contains(err.Error(), "plates.pdf") {
		t.Errorf("expected unsupported error naming the file, got %v", err)
	}
}
