package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfxlsx"
	"github.com/tsawler/pdfxlsx/internal/pdftest"
)

// testConvertCmd returns a command with the convert flags parsed from args.
func testConvertCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "convert"}
	addDetectionFlags(cmd)
	addOutputFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

// testViper returns a fresh viper reading the given yaml config.
func testViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	if yaml == "" {
		return v
	}
	path := filepath.Join(t.TempDir(), "pdfxlsx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v
}

const fileConfig = `
output:
  sheet_name: FromFile
detection:
  strategy: text
log:
  level: warn
`

func TestResolveSettingsPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		args          []string
		wantStrategy  string
		wantSheetName string
		wantPerGroup  bool
	}{
		{"file only", "", nil, "text", "FromFile", false},
		{"env over file", "FromEnv", nil, "text", "FromEnv", false},
		{"flag over file", "", []string{"--strategy", "lines"}, "lines", "FromFile", false},
		{"flag over env", "FromEnv", []string{"--sheet-name", "FromFlag"}, "text", "FromFlag", false},
		{"per group flag", "", []string{"--sheet-per-group"}, "text", "FromFile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("PDFXLSX_OUTPUT_SHEET_NAME", tt.env)
			}

			cfg, log, err := resolveSettings(testConvertCmd(t, tt.args...), testViper(t, fileConfig))
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.Equal(t, tt.wantStrategy, cfg.Detection.Strategy)
			assert.Equal(t, tt.wantSheetName, cfg.Output.SheetName)
			assert.Equal(t, tt.wantPerGroup, cfg.Output.SheetPerGroup)
			assert.Equal(t, "warn", cfg.Log.Level)
		})
	}
}

func TestResolveSettingsRejectsBadStrategyFlag(t *testing.T) {
	_, _, err := resolveSettings(testConvertCmd(t, "--strategy", "ocr"), testViper(t, ""))
	assert.ErrorContains(t, err, "detection.strategy")
}

func TestNewConverterRejectsBadPages(t *testing.T) {
	_, _, err := newConverter(testConvertCmd(t, "--pages", "3-1"), testViper(t, ""), "in.pdf")
	assert.ErrorContains(t, err, "--pages")
}

func TestNewConverterAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "orders.pdf")
	require.NoError(t, os.WriteFile(input, pdftest.Build(
		pdftest.RuledTable([][]string{{"ID", "Name"}, {"1", "bolts"}}),
		pdftest.RuledTable([][]string{{"ID", "Extra"}, {"2", "nuts"}}),
	), 0o644))

	tests := []struct {
		name       string
		args       []string
		wantPolicy pdfxlsx.Policy
		wantSheets []string
		wantPages  int
	}{
		{"config defaults", nil, pdfxlsx.PolicyCombined, []string{"Combined_Table"}, 2},
		{"per group", []string{"--sheet-per-group"}, pdfxlsx.PolicySheetPerGroup, []string{"Table_1", "Table_2"}, 2},
		{"named sheet", []string{"--sheet-name", "Orders"}, pdfxlsx.PolicyCombined, []string{"Orders"}, 2},
		{"page selection", []string{"--pages", "2", "--sheet-per-group"}, pdfxlsx.PolicySheetPerGroup, []string{"Table_1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, _, err := newConverter(testConvertCmd(t, tt.args...), testViper(t, "log:\n  level: error\n"), input)
			require.NoError(t, err)

			report, err := conv.Convert(filepath.Join(t.TempDir(), "out.xlsx"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPolicy, report.Policy)
			assert.Equal(t, tt.wantSheets, report.Sheets)
			assert.Equal(t, tt.wantPages, report.Pages)
		})
	}
}
