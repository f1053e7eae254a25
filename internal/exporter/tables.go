package exporter

import (
	"tenurecli/internal/dataprocessing"
	"tenurecli/pkg/contracts/domain"
)

// WriteTenureLong writes the long-form tenure-by-country-year table. Null
// observations are skipped, not written as zero.
func (w *CSVWriter) WriteTenureLong(path string, observations []domain.Observation) error {
	headers := []string{"country", "tenure_mode", "year", "value"}
	records := make([][]string, 0, len(observations))
	for _, obs := range observations {
		if !obs.Valid {
			continue
		}
		records = append(records, []string{
			obs.Country,
			string(obs.Tenure),
			formatYear(obs.Year),
			formatValue(obs.Value),
		})
	}
	return w.WriteCSV(path, headers, records)
}

// WriteTenureWide writes the wide-form table, one column per tenure mode in
// stacking order. Missing cells stay empty.
func (w *CSVWriter) WriteTenureWide(path string, rows []dataprocessing.WideRow) error {
	headers := []string{"country", "year"}
	for _, mode := range domain.TenureModes {
		headers = append(headers, string(mode))
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := []string{row.Country, formatYear(row.Year)}
		for _, mode := range domain.TenureModes {
			if value, ok := row.Values[mode]; ok {
				record = append(record, formatValue(value))
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}
	return w.WriteCSV(path, headers, records)
}

// WriteTenureIncome writes the long-form tenure-by-income table.
func (w *CSVWriter) WriteTenureIncome(path string, observations []domain.Observation) error {
	headers := []string{"country", "tenure_type", "income", "year", "value"}
	records := make([][]string, 0, len(observations))
	for _, obs := range observations {
		if !obs.Valid {
			continue
		}
		records = append(records, []string{
			obs.Country,
			string(obs.Tenure),
			string(obs.Quintile),
			formatYear(obs.Year),
			formatValue(obs.Value),
		})
	}
	return w.WriteCSV(path, headers, records)
}

// WriteCorrelations writes the tenure/income correlation table.
func (w *CSVWriter) WriteCorrelations(path string, records []domain.CorrelationRecord) error {
	headers := []string{"country", "income", "tenure_x", "tenure_y", "correlation"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Country,
			string(rec.Quintile),
			string(rec.TenureX),
			string(rec.TenureY),
			formatValue(rec.R),
		})
	}
	return w.WriteCSV(path, headers, rows)
}
