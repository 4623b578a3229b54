package grouping

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfxlsx/frame"
)

// raw builds a RawTable for the given page from literal rows
func raw(page int, rows ...[]string) frame.RawTable {
	return frame.RawTable{Page: page, Rows: rows}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []string
		equal bool
	}{
		{"identical", []string{"id", "value"}, []string{"id", "value"}, true},
		{"different order", []string{"id", "value"}, []string{"value", "id"}, false},
		{"trailing empty", []string{"a", ""}, []string{"a"}, false},
		{"empty entries", []string{"", ""}, []string{""}, false},
		{"separator ambiguity", []string{"1:a"}, []string{"1", "a"}, false},
		{"both empty", []string{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, NewSignature(tt.a) == NewSignature(tt.b))
		})
	}
}

func TestSignatureColumns(t *testing.T) {
	header := []string{"id", "", "unit price", "12:x"}
	sig := NewSignature(header)
	assert.Equal(t, header, sig.Columns())
	assert.Equal(t, "[id, , unit price, 12:x]", sig.String())
	assert.Nil(t, Signature("").Columns())
}

func TestGroupingIsCaseInsensitive(t *testing.T) {
	e := New()
	require.Nil(t, e.Add(raw(1, []string{"Name", "Age"}, []string{"alice", "30"})))
	require.Nil(t, e.Add(raw(2, []string{"name", "age"}, []string{"bob", "40"})))
	require.Nil(t, e.Add(raw(3, []string{"Name", "Age", "City"}, []string{"carol", "50", "Paris"})))

	res := e.Result()
	require.Len(t, res.Groups, 2)

	first := res.Groups[0]
	assert.Equal(t, []string{"name", "age"}, first.Table.Columns)
	assert.Equal(t, [][]string{{"alice", "30"}, {"bob", "40"}}, first.Table.Rows)
	assert.Equal(t, []int{1, 2}, first.Pages)
	assert.Equal(t, 2, first.Tables)

	second := res.Groups[1]
	assert.Equal(t, []string{"name", "age", "city"}, second.Table.Columns)
	assert.Equal(t, [][]string{{"carol", "50", "Paris"}}, second.Table.Rows)
}

func TestScenarioTwoPagesSameHeader(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"ID", "Value"}, []string{"1", "a"}))
	e.Add(raw(2, []string{"ID", "Value"}, []string{"2", "b"}))

	res := e.Result()
	require.Len(t, res.Groups, 1)
	assert.Equal(t, 2, res.Groups[0].Table.RowCount())
	assert.Equal(t, 2, res.Rows())
	assert.False(t, res.Empty())
}

func TestScenarioEmptyHeader(t *testing.T) {
	e := New()
	skip := e.Add(raw(1, []string{"", " ", "\n"}, []string{"1", "2", "3"}))

	require.NotNil(t, skip)
	assert.Equal(t, SkipEmptyHeader, skip.Reason)
	assert.True(t, e.Result().Empty())
	assert.Equal(t, 0, e.Len())
}

func TestScenarioDifferentSignatures(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"ID", "Name"}, []string{"1", "a"}))
	e.Add(raw(2, []string{"ID", "Name", "Extra"}, []string{"2", "b", "x"}))

	res := e.Result()
	require.Len(t, res.Groups, 2)
	assert.Equal(t, NewSignature([]string{"id", "name"}), res.Groups[0].Signature)
	assert.Equal(t, NewSignature([]string{"id", "name", "extra"}), res.Groups[1].Signature)
}

func TestAddSkips(t *testing.T) {
	tests := []struct {
		name   string
		table  frame.RawTable
		reason SkipReason
	}{
		{"no rows", raw(1), SkipTooFewRows},
		{"header only", raw(1, []string{"a", "b"}), SkipTooFewRows},
		{"empty header row", raw(1, []string{}, []string{"1"}), SkipMissingHeader},
		{"nil header row", raw(1, nil, []string{"1"}), SkipMissingHeader},
		{"blank header", raw(1, []string{"", ""}, []string{"1", "2"}), SkipEmptyHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			skip := e.Add(tt.table)
			require.NotNil(t, skip)
			assert.Equal(t, tt.reason, skip.Reason)
			assert.Len(t, e.Skips(), 1)
			assert.Contains(t, skip.Error(), "page 1 table 1 skipped")
		})
	}
}

func TestDuplicateHeaderColumns(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"Amount", "amount", "AMOUNT"}, []string{"1", "2", "3"}))
	e.Add(raw(2, []string{"amount", "Amount", "amount"}, []string{"4", "5", "6"}))

	res := e.Result()
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, []string{"amount", "amount", "amount"}, g.Header)
	assert.Equal(t, []string{"amount", "amount_1", "amount_2"}, g.Table.Columns)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, g.Table.Rows)
}

func TestRaggedRows(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"a", "b"}, []string{"1"}, []string{"2", "x", "overflow"}))

	res := e.Result()
	require.Len(t, res.Groups, 1)
	assert.Equal(t, [][]string{{"1", ""}, {"2", "x"}}, res.Groups[0].Table.Rows)
}

func TestResultSanitizes(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"id", "name"},
		[]string{"1", "alice"},
		[]string{"", ""},
		[]string{"", "orphan"},
		[]string{"2", ""},
	))

	res := e.Result()
	require.Len(t, res.Groups, 1)
	assert.Equal(t, [][]string{{"1", "alice"}, {"2", ""}}, res.Groups[0].Table.Rows)

	// the engine state itself is not sanitized
	again := e.Result()
	assert.Equal(t, res.Groups[0].Table.Rows, again.Groups[0].Table.Rows)
}

func TestResultOrderIsFirstSeen(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"b"}, []string{"1"}))
	e.Add(raw(1, []string{"a"}, []string{"2"}))
	e.Add(raw(2, []string{"b"}, []string{"3"}))
	e.Add(raw(3, []string{"c"}, []string{"4"}))

	res := e.Result()
	require.Len(t, res.Groups, 3)
	var got []string
	for _, g := range res.Groups {
		got = append(got, g.Header[0])
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)
	assert.Equal(t, [][]string{{"1"}, {"3"}}, res.Groups[0].Table.Rows)
	assert.Equal(t, 4, res.Tables)
}

func TestCombined(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"ID", "Name"}, []string{"1", "a"}))
	e.Add(raw(2, []string{"ID", "Name", "Extra"}, []string{"2", "b", "x"}))
	e.Add(raw(3, []string{"City", "ID"}, []string{"Paris", "3"}))

	combined := e.Result().Combined("Combined_Table")

	assert.Equal(t, "Combined_Table", combined.Name)
	assert.Equal(t, []string{"id", "name", "extra", "city"}, combined.Columns)
	assert.Equal(t, [][]string{
		{"1", "a", "", ""},
		{"2", "b", "x", ""},
		{"3", "", "", "Paris"},
	}, combined.Rows)
}

func TestCombinedEmpty(t *testing.T) {
	combined := New().Result().Combined("Combined_Table")
	assert.Equal(t, "Combined_Table", combined.Name)
	assert.Empty(t, combined.Columns)
	assert.Empty(t, combined.Rows)
}

func TestFrames(t *testing.T) {
	e := New()
	e.Add(raw(1, []string{"a"}, []string{"1"}))
	e.Add(raw(1, []string{"b"}, []string{"2"}))

	frames := e.Result().Frames("Table")
	require.Len(t, frames, 2)
	assert.Equal(t, "Table_1", frames[0].Name)
	assert.Equal(t, "Table_2", frames[1].Name)
	assert.Nil(t, New().Result().Frames("Table"))
}

func TestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := New(WithLogger(logger))

	e.Add(raw(4, []string{"ID", "Value"}, []string{"1", "a"}))
	e.Add(raw(5, []string{"", ""}, []string{"1", "a"}))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, 4, entries[0].Data["page"])
	assert.Equal(t, []string{"id", "value"}, entries[0].Data["headers"])

	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, 5, entries[1].Data["page"])
	assert.Equal(t, "invalid or empty header", entries[1].Data["reason"])
	assert.Contains(t, entries[1].Message, "skipping a table on page 5")
}

func TestMergedTablesShareGroupFrame(t *testing.T) {
	e := New()
	require.Nil(t, e.Add(raw(1, []string{"id", "name"}, []string{"1", "a"})))
	require.Nil(t, e.Add(raw(2, []string{"ID", "Name"}, []string{"2", "b"}, []string{"3", "c"})))

	res := e.Result()
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, []string{"id", "name"}, g.Table.Columns)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}}, g.Table.Rows)
	assert.Equal(t, 2, g.Tables)
	assert.Equal(t, []int{1, 2}, g.Pages)
}

func TestSkipReasonString(t *testing.T) {
	assert.Equal(t, "missing or invalid data", SkipTooFewRows.String())
	assert.Equal(t, "missing header row", SkipMissingHeader.String())
	assert.Equal(t, "invalid or empty header", SkipEmptyHeader.String())
	assert.Equal(t, "misaligned columns", SkipMisaligned.String())
	assert.Equal(t, "unknown", SkipReason(99).String())
}
