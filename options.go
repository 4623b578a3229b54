package pdfxlsx

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfxlsx/extract"
	"github.com/tsawler/pdfxlsx/xlsx"
)

// Policy decides how groups become worksheets. One policy applies to a
// whole conversion.
type Policy int

const (
	// PolicyCombined writes every group into one sheet whose columns are the
	// union of all group columns in first-seen order.
	PolicyCombined Policy = iota
	// PolicySheetPerGroup writes each group to its own sheet.
	PolicySheetPerGroup
)

// String returns the policy name used in reports and configuration.
func (p Policy) String() string {
	switch p {
	case PolicyCombined:
		return "combined"
	case PolicySheetPerGroup:
		return "sheet-per-group"
	default:
		return "unknown"
	}
}

const (
	// DefaultSheetName names the single sheet written under PolicyCombined.
	DefaultSheetName = "Combined_Table"
	// GroupSheetPrefix prefixes the sheets written under
	// PolicySheetPerGroup: Table_1, Table_2, ...
	GroupSheetPrefix = "Table"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Page selection (1-indexed), nil means all pages
	pages []int

	policy    Policy
	sheetName string

	extract extract.Config
	export  xlsx.Options

	log logrus.FieldLogger
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		pages:     nil,
		policy:    PolicyCombined,
		sheetName: DefaultSheetName,
		extract:   extract.DefaultConfig(),
		export:    xlsx.DefaultOptions(),
		log:       logrus.StandardLogger(),
	}
}

// clone creates a deep copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	newOpts := o

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
