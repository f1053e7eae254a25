package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all filesystem locations the pipeline touches. It is the
// single source of truth for file paths: no other package builds a path from
// string literals.
type Paths struct {
	ExecutableDir string
	DataDir       string
	DownloadsDir  string
	ReportsDir    string
	ChartsDir     string
	NetworkDir    string
	LogsDir       string

	ConfigFile string

	// Well-known outputs.
	WorkbookFile     string
	TenureLongCSV    string
	TenureWideCSV    string
	TenureIncomeCSV  string
	CorrelationCSV   string
	AreaChartPNG     string
	IncomeChartPNG   string
	HeatmapPNG       string
	HeatmapSVG       string
}

// GetPaths returns the pipeline paths relative to the executable location.
// Paths are never relative to the current working directory, so the binary
// behaves the same wherever it is invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// NewPaths builds the path set under an explicit base directory. Tests use it
// with a temporary directory.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	chartsDir := filepath.Join(dataDir, "charts")
	reportsDir := filepath.Join(dataDir, "reports")
	downloadsDir := filepath.Join(dataDir, "downloads")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		DownloadsDir:  downloadsDir,
		ReportsDir:    reportsDir,
		ChartsDir:     chartsDir,
		NetworkDir:    filepath.Join(chartsDir, "network"),
		LogsDir:       filepath.Join(baseDir, "logs"),

		ConfigFile: filepath.Join(baseDir, "tenure-config.yml"),

		WorkbookFile:    filepath.Join(downloadsDir, "HM1-3-Housing-tenures.xlsx"),
		TenureLongCSV:   filepath.Join(reportsDir, "tenure_by_country_year.csv"),
		TenureWideCSV:   filepath.Join(reportsDir, "tenure_by_country_year_wide.csv"),
		TenureIncomeCSV: filepath.Join(reportsDir, "tenure_by_income.csv"),
		CorrelationCSV:  filepath.Join(reportsDir, "tenure_income_correlation.csv"),
		AreaChartPNG:    filepath.Join(chartsDir, "tenure_area_by_country.png"),
		IncomeChartPNG:  filepath.Join(chartsDir, "tenure_by_income.png"),
		HeatmapPNG:      filepath.Join(chartsDir, "tenure_correlation_heatmap.png"),
		HeatmapSVG:      filepath.Join(chartsDir, "tenure_correlation_heatmap.svg"),
	}
}

// EnsureDirectories creates every directory the pipeline writes into.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.DownloadsDir,
		p.ReportsDir,
		p.ChartsDir,
		p.NetworkDir,
		p.LogsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the absolute path for a log file name.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetDownloadPath returns the absolute path for a downloaded file name.
func (p *Paths) GetDownloadPath(name string) string {
	return filepath.Join(p.DownloadsDir, name)
}

// GetReportPath returns the absolute path for a report file name.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}
