package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gospreadsheet "github.com/VantageDataChat/GoExcel"
	"github.com/google/go-cmp/cmp"

	"pcqmdeck/deck"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestGoPPTService_RenderOverview(t *testing.T) {
	d := deck.Overview()

	data, err := NewGoPPTService().Render(d)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("PPTX output is not a zip archive")
	}

	path := writeTemp(t, "overview.pptx", data)

	n, err := SlideCount(path)
	if err != nil {
		t.Fatalf("SlideCount() error: %v", err)
	}
	if n != deck.OverviewSlideCount {
		t.Fatalf("SlideCount() = %d, want %d", n, deck.OverviewSlideCount)
	}

	summaries, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	var titles []string
	for _, s := range summaries {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff(d.Titles(), titles); diff != "" {
		t.Errorf("slide titles mismatch (-want +got):\n%s", diff)
	}
}

func TestGoPPTService_TableCellsRoundTrip(t *testing.T) {
	d := deck.Overview()
	data, err := NewGoPPTService().Render(d)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	summaries, err := InspectBytes(data)
	if err != nil {
		t.Fatalf("InspectBytes() error: %v", err)
	}

	// Slide 11 holds the status table: 3 headers then 3 rows of 3 cells
	got := summaries[10].Texts
	want := []string{"Trạng thái", "Điều kiện", "Hành động"}
	for _, row := range d.Slides[10].Table.Rows {
		want = append(want, row...)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status table texts mismatch (-want +got):\n%s", diff)
	}
}

func TestGoPPTService_ContentBulletsKeepItemText(t *testing.T) {
	data, err := NewGoPPTService().Render(deck.Overview())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	summaries, err := InspectBytes(data)
	if err != nil {
		t.Fatalf("InspectBytes() error: %v", err)
	}

	var roi *SlideSummary
	for i := range summaries {
		if strings.Contains(summaries[i].Title, "ROI ƯỚC TÍNH") {
			roi = &summaries[i]
		}
	}
	if roi == nil || len(roi.Texts) == 0 {
		t.Fatal("ROI slide not found")
	}
	want := "•\n• GIÁ TRỊ KHÁC (khó đo lường):\n• • Phát hiện sớm dự án có vấn đề"
	if !strings.Contains(roi.Texts[0], want) {
		t.Errorf("ROI bullets = %q, want to contain %q", roi.Texts[0], want)
	}
}

func TestGoPPTService_EmptyDeck(t *testing.T) {
	if _, err := NewGoPPTService().Render(deck.Deck{}); err == nil {
		t.Fatal("Render(empty) = nil error, want error")
	}
}

func TestCardOrigin(t *testing.T) {
	cases := []struct {
		i    int
		x, y float64
	}{
		{0, 0.5, 1.6},
		{1, 4.6, 1.6},
		{2, 8.7, 1.6},
		{3, 0.5, 4.1},
		{5, 8.7, 4.1},
	}
	for _, c := range cases {
		x, y := cardOrigin(c.i)
		if !approxEqual(x, c.x) || !approxEqual(y, c.y) {
			t.Errorf("cardOrigin(%d) = (%v, %v), want (%v, %v)", c.i, x, y, c.x, c.y)
		}
	}
}

func TestTableGeometry_CapsHeight(t *testing.T) {
	_, _, colWidth, rowHeight := tableGeometry(3, 4)
	if !approxEqual(rowHeight, 0.5) {
		t.Errorf("rowHeight for 4 rows = %v, want 0.5", rowHeight)
	}
	if !approxEqual(colWidth*3, 12.333) {
		t.Errorf("total width = %v, want 12.333", colWidth*3)
	}

	_, _, _, rowHeight = tableGeometry(2, 20)
	if !approxEqual(rowHeight*20, maxTableHeight) {
		t.Errorf("table height for 20 rows = %v, want %v", rowHeight*20, maxTableHeight)
	}
}

func TestEMU_ScalesDesignCanvas(t *testing.T) {
	if got := emu(designWidth); got < gopptSlideWidth-emuPerInch/100 || got > gopptSlideWidth+emuPerInch/100 {
		t.Errorf("emu(designWidth) = %d, want about %d", got, gopptSlideWidth)
	}
	if got := emu(designHeight); got != gopptSlideHeight {
		t.Errorf("emu(designHeight) = %d, want %d", got, gopptSlideHeight)
	}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestGoExcelExportService_ExportTables(t *testing.T) {
	data, err := NewGoExcelExportService().ExportTables(deck.Overview())
	if err != nil {
		t.Fatalf("ExportTables() error: %v", err)
	}

	wb, err := gospreadsheet.OpenFile(writeTemp(t, "tables.xlsx", data))
	if err != nil {
		t.Fatalf("failed to open Excel file: %v", err)
	}
	ws := wb.GetActiveSheet()
	if ws == nil {
		t.Fatal("no active sheet")
	}
	rows, err := ws.RowIterator()
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("active sheet has %d rows, want a header and data", len(rows))
	}
}

func TestGoExcelExportService_NoTables(t *testing.T) {
	d := deck.Deck{Slides: []deck.Slide{{Kind: deck.KindSection, Title: "x"}}}
	if _, err := NewGoExcelExportService().ExportTables(d); err == nil {
		t.Fatal("ExportTables() = nil error for a deck without tables")
	}
}

func TestSheetName(t *testing.T) {
	cases := []struct {
		number int
		title  string
		want   string
	}{
		{4, "VẤN ĐỀ & GIẢI PHÁP", "04 VẤN ĐỀ & GIẢI PHÁP"},
		{11, "a/b:c?d*[e]", "11 a b c d e"},
		{17, "ĐỀ XUẤT PHÁT TRIỂN GIAI ĐOẠN 2", "17 ĐỀ XUẤT PHÁT TRIỂN GIAI ĐOẠN"},
	}
	for _, c := range cases {
		got := SheetName(c.number, c.title)
		if got != c.want {
			t.Errorf("SheetName(%d, %q) = %q, want %q", c.number, c.title, got, c.want)
		}
		if n := len([]rune(got)); n > maxSheetName {
			t.Errorf("SheetName(%d, %q) has %d runes", c.number, c.title, n)
		}
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}
	first := uniqueSheetName("06 TỔNG QUAN", used)
	second := uniqueSheetName("06 TỔNG QUAN", used)
	if first == second {
		t.Fatalf("uniqueSheetName returned %q twice", first)
	}
	if second != "06 TỔNG QUAN (2)" {
		t.Errorf("second name = %q, want %q", second, "06 TỔNG QUAN (2)")
	}

	long := strings.Repeat("x", maxSheetName)
	used[long] = true
	if got := uniqueSheetName(long, used); len([]rune(got)) > maxSheetName {
		t.Errorf("uniqueSheetName(long) = %q exceeds %d runes", got, maxSheetName)
	}
}

func TestColumnWidth(t *testing.T) {
	if got := ColumnWidth(2); got != 12 {
		t.Errorf("ColumnWidth(2) = %v, want 12", got)
	}
	if got := ColumnWidth(500); got != 60 {
		t.Errorf("ColumnWidth(500) = %v, want 60", got)
	}
}

func TestWordExportService_ExportOutline(t *testing.T) {
	data, err := NewWordExportService().ExportOutline(deck.Overview())
	if err != nil {
		t.Fatalf("ExportOutline() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("DOCX output is not a zip archive")
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error: %v", err)
	}
	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		body = string(raw)
	}
	if body == "" {
		t.Fatal("word/document.xml missing")
	}
	for i := 1; i <= deck.OverviewSlideCount; i++ {
		if !strings.Contains(body, fmt.Sprintf(">%d. ", i)) {
			t.Errorf("document has no heading numbered %d", i)
		}
	}
	if !strings.Contains(body, "NỘI DUNG TRÌNH BÀY") {
		t.Error("document missing the agenda heading text")
	}
}

func TestPDFExportService_ExportHandout(t *testing.T) {
	data, err := NewPDFExportService().ExportHandout(deck.Overview())
	if err != nil {
		t.Fatalf("ExportHandout() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if title := Fold(deck.Overview().Title); !bytes.Contains(data, []byte(title)) {
		t.Errorf("PDF metadata missing folded title %q", title)
	}
}

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"HỆ THỐNG QUẢN LÝ CHI PHÍ", "HE THONG QUAN LY CHI PHI"},
		{"Đề xuất phát triển", "De xuat phat trien"},
		{"🚀 ĐỀ XUẤT", "DE XUAT"},
		{"CPI ≥ 1.0", "CPI >= 1.0"},
		{"• • Dữ liệu lịch sử", "- - Du lieu lich su"},
		{"Excel → PPT", "Excel -> PPT"},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Errorf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"pdf, XLSX", "pptx", ".docx", "pdf"})
	if err != nil {
		t.Fatalf("ParseFormats() error: %v", err)
	}
	want := []Format{FormatPPTX, FormatPDF, FormatXLSX, FormatDOCX}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFormats mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseFormats([]string{"odp"}); err == nil {
		t.Error("ParseFormats(odp) = nil error, want error")
	}
}

func TestOutputPath(t *testing.T) {
	base := filepath.Join("docs", "PROJECT_OVERVIEW_PRESENTATION.pptx")
	if got, want := OutputPath(base, FormatPDF), filepath.Join("docs", "PROJECT_OVERVIEW_PRESENTATION.pdf"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	if got := OutputPath(base, FormatPPTX); got != base {
		t.Errorf("OutputPath(pptx) = %q, want %q", got, base)
	}
}

func TestRenderer_AllFormats(t *testing.T) {
	r := NewRenderer()
	d := deck.Overview()
	for _, f := range AllFormats {
		data, err := r.Render(f, d)
		if err != nil {
			t.Fatalf("Render(%s) error: %v", f, err)
		}
		if len(data) == 0 {
			t.Errorf("Render(%s) returned no bytes", f)
		}
	}
	if _, err := r.Render(Format("odp"), d); err == nil {
		t.Error("Render(odp) = nil error, want error")
	}
}
