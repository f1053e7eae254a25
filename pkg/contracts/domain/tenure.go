package domain

import (
	"fmt"
	"strings"
)

// TenureMode is a housing occupancy category. The order of TenureModes is
// meaningful: stacked-area charts and correlation matrices use it.
type TenureMode string

const (
	TenureOwnOutright    TenureMode = "Own outright"
	TenureOwnerMortgage  TenureMode = "Owner with mortgage"
	TenureRentPrivate    TenureMode = "Rent (private)"
	TenureRentSubsidized TenureMode = "Rent (subsidized)"
	TenureOther          TenureMode = "Other, unknown"
)

// TenureModes lists every tenure mode in stacking order.
var TenureModes = []TenureMode{
	TenureOwnOutright,
	TenureOwnerMortgage,
	TenureRentPrivate,
	TenureRentSubsidized,
	TenureOther,
}

// tenureAliases maps the labels the OECD sheets actually print onto the
// canonical modes. Lookup is case-insensitive after trimming.
var tenureAliases = map[string]TenureMode{
	"own outright":                       TenureOwnOutright,
	"owner with mortgage":                TenureOwnerMortgage,
	"owner with mortgages":               TenureOwnerMortgage,
	"rent (private)":                     TenureRentPrivate,
	"rent private":                       TenureRentPrivate,
	"rent (subsidized)":                  TenureRentSubsidized,
	"rent (subsidised)":                  TenureRentSubsidized,
	"rent (subsidized or reduced price)": TenureRentSubsidized,
	"other, unknown":                     TenureOther,
	"other or unknown":                   TenureOther,
	"other":                              TenureOther,
}

// ParseTenureMode resolves a sheet label to a canonical tenure mode.
func ParseTenureMode(label string) (TenureMode, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if mode, ok := tenureAliases[key]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("unknown tenure mode label: %q", label)
}

// Rank returns the position of the mode in stacking order, or -1 for an
// unknown mode.
func (m TenureMode) Rank() int {
	for i, mode := range TenureModes {
		if mode == m {
			return i
		}
	}
	return -1
}

// Short returns a compact label used on chart axes and network nodes.
func (m TenureMode) Short() string {
	switch m {
	case TenureOwnOutright:
		return "Own"
	case TenureOwnerMortgage:
		return "Mortgage"
	case TenureRentPrivate:
		return "Rent priv."
	case TenureRentSubsidized:
		return "Rent subs."
	case TenureOther:
		return "Other"
	}
	return string(m)
}

// IncomeQuintile is one of five equal-sized population segments ranked by
// income. The order of IncomeQuintiles is semantically meaningful.
type IncomeQuintile string

const (
	QuintileBottom IncomeQuintile = "Bottom quintile"
	QuintileSecond IncomeQuintile = "Second quintile"
	QuintileThird  IncomeQuintile = "Third quintile"
	QuintileFourth IncomeQuintile = "Fourth quintile"
	QuintileTop    IncomeQuintile = "Top quintile"
)

// IncomeQuintiles lists the quintiles from lowest to highest income.
var IncomeQuintiles = []IncomeQuintile{
	QuintileBottom,
	QuintileSecond,
	QuintileThird,
	QuintileFourth,
	QuintileTop,
}

var quintileAliases = map[string]IncomeQuintile{
	"bottom quintile": QuintileBottom,
	"quintile 1":      QuintileBottom,
	"second quintile": QuintileSecond,
	"quintile 2":      QuintileSecond,
	"third quintile":  QuintileThird,
	"quintile 3":      QuintileThird,
	"fourth quintile": QuintileFourth,
	"quintile 4":      QuintileFourth,
	"top quintile":    QuintileTop,
	"quintile 5":      QuintileTop,
}

// ParseIncomeQuintile resolves a sheet label to a canonical quintile.
func ParseIncomeQuintile(label string) (IncomeQuintile, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if q, ok := quintileAliases[key]; ok {
		return q, nil
	}
	return "", fmt.Errorf("unknown income quintile label: %q", label)
}

// Rank returns the position of the quintile from bottom (0) to top (4), or -1
// for an unknown quintile.
func (q IncomeQuintile) Rank() int {
	for i, quintile := range IncomeQuintiles {
		if quintile == q {
			return i
		}
	}
	return -1
}

// Short returns a compact label used on chart facets.
func (q IncomeQuintile) Short() string {
	switch q {
	case QuintileBottom:
		return "Q1"
	case QuintileSecond:
		return "Q2"
	case QuintileThird:
		return "Q3"
	case QuintileFourth:
		return "Q4"
	case QuintileTop:
		return "Q5"
	}
	return string(q)
}

// Observation is a single tidy data point: the share of households in one
// tenure mode for a country and year, optionally within an income quintile.
// Valid is false when the source cell carried the ".." missing marker; Value
// is meaningless in that case.
type Observation struct {
	Country  string         `json:"country" validate:"required"`
	Tenure   TenureMode     `json:"tenure_mode" validate:"required"`
	Quintile IncomeQuintile `json:"income_quintile,omitempty"`
	Year     int            `json:"year" validate:"required"`
	Value    float64        `json:"value"`
	Valid    bool           `json:"valid"`
}

// CorrelationRecord is one cell of a per-group correlation matrix in long
// relational form. R is a Pearson coefficient in [-1, 1]; undefined
// coefficients are reported as 0.
type CorrelationRecord struct {
	Country  string         `json:"country"`
	Quintile IncomeQuintile `json:"income_quintile"`
	TenureX  TenureMode     `json:"tenure_x"`
	TenureY  TenureMode     `json:"tenure_y"`
	R        float64        `json:"correlation"`
}
