// Package simulation drives a turn-based run of the charging network: it
// builds the company, its stations and vehicles from a Config, plays the
// turns in plate order and reports events to a metrics sink.
package simulation
