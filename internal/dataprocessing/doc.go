// Package dataprocessing turns the OECD housing tenure workbook into tidy
// long-form observations.
//
// The sheets arrive in classic spreadsheet shape: country labels printed only
// on the first row of each block, a merged two-row header (income quintile
// over year) and ".." standing in for missing values. The package
// reconstructs flat column names from the stacked header rows, forward-fills
// the blanked-out labels, and melts the wide grid into one row per
// observation.
package dataprocessing
