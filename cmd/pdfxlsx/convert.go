package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/pdfxlsx"
	"github.com/tsawler/pdfxlsx/internal/config"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf> <output.xlsx>",
	Short: "Convert the tables in a PDF into a spreadsheet",
	Long: `Extract every table from the PDF, merge tables with matching headers,
and write the result to an .xlsx file.

If no table is found, nothing is written and the command exits successfully.

Examples:
  pdfxlsx convert report.pdf report.xlsx
  pdfxlsx convert report.pdf report.xlsx --pages 1,3-5
  pdfxlsx convert report.pdf report.xlsx --sheet-per-group`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	addDetectionFlags(convertCmd)
	addOutputFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("sheet-per-group", false, "write each header group to its own sheet")
	cmd.Flags().String("sheet-name", "", "name of the combined sheet (default Combined_Table)")
}

func addDetectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("pages", "", "pages to read, e.g. 1,3-5 (default all)")
	cmd.Flags().String("strategy", "", "table detection: auto, lines or text")
}

func runConvert(cmd *cobra.Command, args []string) error {
	conv, log, err := newConverter(cmd, viper.GetViper(), args[0])
	if err != nil {
		return err
	}

	report, err := conv.Convert(args[1])
	if err != nil {
		log.WithError(err).Error("conversion failed")
		return err
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warnings:\n%s\n", pdfxlsx.FormatWarnings(report.Warnings))
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	return nil
}

// resolveSettings loads the settings held by v and applies the flags the
// user set on cmd. Flags win over the config file and environment.
func resolveSettings(cmd *cobra.Command, v *viper.Viper) (config.Config, *logrus.Logger, error) {
	cfg, log, err := loadSettings(v)
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Detection.Strategy, _ = flags.GetString("strategy")
	}
	if flags.Changed("sheet-per-group") {
		cfg.Output.SheetPerGroup, _ = flags.GetBool("sheet-per-group")
	}
	if flags.Changed("sheet-name") {
		cfg.Output.SheetName, _ = flags.GetString("sheet-name")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

// newConverter builds a converter for input from the settings in v and the
// command's flags.
func newConverter(cmd *cobra.Command, v *viper.Viper, input string) (*pdfxlsx.Converter, *logrus.Logger, error) {
	cfg, log, err := resolveSettings(cmd, v)
	if err != nil {
		return nil, nil, err
	}

	ec, err := cfg.ExtractConfig()
	if err != nil {
		return nil, nil, err
	}

	pagesFlag, _ := cmd.Flags().GetString("pages")
	pages, err := parsePages(pagesFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("--pages: %w", err)
	}

	conv := pdfxlsx.Open(input).
		WithExtractConfig(ec).
		WithExportOptions(cfg.ExportOptions()).
		WithLogger(log)
	if cfg.Output.SheetPerGroup {
		conv = conv.SheetPerGroup()
	} else {
		conv = conv.CombinedSheet(cfg.Output.SheetName)
	}
	if len(pages) > 0 {
		conv = conv.Pages(pages...)
	}
	return conv, log, nil
}
