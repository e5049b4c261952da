// Package export renders simulation results as the console report, JSON
// or CSV.
package export
