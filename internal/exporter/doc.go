// Package exporter writes the tidy tenure tables and correlation records to
// CSV files under the reports directory.
package exporter
