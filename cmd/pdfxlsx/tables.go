package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <input.pdf>",
	Short: "Print the merged table groups as Markdown",
	Long: `Extract and group the tables in a PDF without writing a spreadsheet.
Each header group is printed as a Markdown table, preceded by the pages it
was found on.`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	addDetectionFlags(tablesCmd)
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	conv, log, err := newConverter(cmd, viper.GetViper(), args[0])
	if err != nil {
		return err
	}

	result, warnings, err := conv.Tables()
	if err != nil {
		log.WithError(err).Error("extraction failed")
		return err
	}
	for _, w := range warnings {
		log.WithField("page", w.Page).Warn(w.Message)
	}

	out := cmd.OutOrStdout()
	if result.Empty() {
		fmt.Fprintf(out, "No tables found in %s.\n", args[0])
		return nil
	}

	for i, g := range result.Groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "## Group %d (pages %s, %d table(s))\n\n", i+1, joinInts(g.Pages), g.Tables)
		fmt.Fprint(out, g.Table.ToMarkdown())
	}
	return nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
