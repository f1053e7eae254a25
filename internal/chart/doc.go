// Package chart renders the static figures: stacked tenure areas faceted by
// country, point+line trends faceted by income quintile, the combined
// correlation heatmap, and one correlation network diagram per
// (country, quintile) group. Rendering is pure layout; all numbers arrive
// precomputed.
package chart
