package xlsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/pdfxlsx/format"
	"github.com/tsawler/pdfxlsx/frame"
)

func sampleFrame(name string) *frame.Frame {
	f := frame.New([]string{"id", "description"}, [][]string{
		{"1", "short"},
		{"2", "line one\nline two\nline three"},
	})
	f.Name = name
	return f
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteSingleSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Combined_Table")}, DefaultOptions()))

	wb := openWorkbook(t, path)
	assert.Equal(t, []string{"Combined_Table"}, wb.GetSheetList())

	rows, err := wb.GetRows("Combined_Table")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "description"},
		{"1", "short"},
		{"2", "line one\nline two\nline three"},
	}, rows)
}

func TestWriteColumnWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widths.xlsx")
	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Data")}, DefaultOptions()))

	wb := openWorkbook(t, path)

	widthA, err := wb.GetColWidth("Data", "A")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, widthA, 0.001) // "id" + 2

	widthB, err := wb.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, widthB, 0.001) // 28 runes + 2
}

func TestWriteRowHeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heights.xlsx")
	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Data")}, DefaultOptions()))

	wb := openWorkbook(t, path)

	tall, err := wb.GetRowHeight("Data", 3)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, tall, 0.001)

	normal, err := wb.GetRowHeight("Data", 2)
	require.NoError(t, err)
	assert.Less(t, normal, 30.0)
}

func TestWriteCustomOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.xlsx")
	opts := Options{ColumnPadding: 5, LineHeight: 20}
	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Data")}, opts))

	wb := openWorkbook(t, path)
	width, err := wb.GetColWidth("Data", "A")
	require.NoError(t, err)
	assert.InDelta(t, 7.0, width, 0.001)

	height, err := wb.GetRowHeight("Data", 3)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, height, 0.001)
}

func TestWriteCapsWidth(t *testing.T) {
	long := strings.Repeat("x", 400)
	f := frame.New([]string{"text"}, [][]string{{long}})
	f.Name = "Long"

	path := filepath.Join(t.TempDir(), "long.xlsx")
	require.NoError(t, Write(path, []*frame.Frame{f}, DefaultOptions()))

	wb := openWorkbook(t, path)
	width, err := wb.GetColWidth("Long", "A")
	require.NoError(t, err)
	assert.InDelta(t, 255.0, width, 0.001)
}

func TestWriteMultipleSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.xlsx")
	frames := []*frame.Frame{
		sampleFrame("Table_1"),
		sampleFrame("Table_2"),
		sampleFrame("table_1"), // collides case-insensitively
		sampleFrame("bad:name/with*chars"),
		sampleFrame(""),
	}

	require.NoError(t, Write(path, frames, DefaultOptions()))

	wb := openWorkbook(t, path)
	assert.Equal(t, []string{"Table_1", "Table_2", "table_1_2", "bad_name_with_chars", "Sheet5"}, wb.GetSheetList())
}

func TestWriteIsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detect.xlsx")
	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Data")}, DefaultOptions()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)

	got, err := format.DetectFromReader(file, info.Size())
	require.NoError(t, err)
	assert.Equal(t, format.XLSX, got)
}

func TestWriteNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.xlsx")
	err := Write(path, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoSheets)
	assert.NoFileExists(t, path)
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	// the destination is an existing directory, so the final rename fails
	dest := filepath.Join(dir, "taken.xlsx")
	require.NoError(t, os.Mkdir(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "keep"), []byte("x"), 0o644))

	err := Write(dest, []*frame.Frame{sampleFrame("Data")}, DefaultOptions())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary workbook must be removed")
	assert.Equal(t, "taken.xlsx", entries[0].Name())
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	err := Write(path, []*frame.Frame{sampleFrame("Data")}, DefaultOptions())
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, Write(path, []*frame.Frame{sampleFrame("Data")}, DefaultOptions()))

	wb := openWorkbook(t, path)
	assert.Equal(t, []string{"Data"}, wb.GetSheetList())
}

func TestCheckDestination(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"ok", filepath.Join(dir, "out.xlsx"), nil},
		{"uppercase extension", filepath.Join(dir, "OUT.XLSX"), nil},
		{"wrong extension", filepath.Join(dir, "out.csv"), ErrOutputFormat},
		{"legacy excel", filepath.Join(dir, "out.xls"), ErrOutputFormat},
		{"missing directory", filepath.Join(dir, "nope", "out.xlsx"), ErrNotWritable},
		{"parent is a file", filepath.Join(file, "out.xlsx"), ErrNotWritable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDestination(tt.path)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "scratch files must be removed")
}

func TestCheckDestinationReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := CheckDestination(filepath.Join(dir, "out.xlsx"))
	assert.ErrorIs(t, err, ErrNotWritable)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Combined_Table", "Combined_Table"},
		{"a/b\\c?d*e[f]g:h", "a_b_c_d_e_f_g_h"},
		{"'quoted'", "quoted"},
		{"  spaced  ", "spaced"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeSheetName(tt.in), "input %q", tt.in)
	}
}

func TestSheetNamerTruncatesBeforeSuffix(t *testing.T) {
	n := newSheetNamer()
	long := strings.Repeat("y", 40)

	first := n.next(long)
	second := n.next(long)

	assert.Equal(t, strings.Repeat("y", 31), first)
	assert.Equal(t, strings.Repeat("y", 29)+"_2", second)
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one\ntwo", 2},
		{"one\r\ntwo\r\nthree", 3},
		{"trailing\n", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lineCount(tt.in), "input %q", tt.in)
	}
}

func TestSheetNamesMatchWrite(t *testing.T) {
	frames := []*frame.Frame{sampleFrame("Data"), sampleFrame("data"), sampleFrame("x?y")}
	path := filepath.Join(t.TempDir(), "names.xlsx")
	require.NoError(t, Write(path, frames, DefaultOptions()))

	wb := openWorkbook(t, path)
	assert.Equal(t, wb.GetSheetList(), SheetNames(frames))
	assert.Equal(t, []string{"Data", "data_2", "x_y"}, SheetNames(frames))
}
